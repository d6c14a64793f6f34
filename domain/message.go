// Package domain contains core concepts of the relay.
// This file defines the closed set of inbound wire messages.
// Messages are immutable and validated by the domain.
package domain

import (
	"encoding/json"
	"fmt"

	appErrors "linguasync/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Inbound is the closed union of decoded client messages.
// The Router switches exhaustively over the three concrete types.
type Inbound interface {
	inbound()
}

// Join declares the sender's preferred language. Re-joining overwrites it.
type Join struct {
	Lang LangCode `json:"lang" validate:"required"`
}

// Chat carries plain text to fan out to every live participant.
type Chat struct {
	Content string `json:"content" validate:"required"`
}

// DocEdit carries a JSON-encoded DocPayload in its Content field.
// The inner payload is parsed separately so that a malformed edit
// can be dropped without touching the connection.
type DocEdit struct {
	Content string `json:"content" validate:"required"`
}

// DocPayload is the inner object of a DocEdit message.
type DocPayload struct {
	Content string `json:"content" validate:"required"`
	DocID   string `json:"docId"`
}

func (Join) inbound()    {}
func (Chat) inbound()    {}
func (DocEdit) inbound() {}

// Payload decodes and validates the inner document edit object.
func (d DocEdit) Payload() (DocPayload, error) {
	var p DocPayload
	if err := json.Unmarshal([]byte(d.Content), &p); err != nil {
		return DocPayload{}, fmt.Errorf("document payload: %w", err)
	}
	if err := validate.Struct(p); err != nil {
		return DocPayload{}, fmt.Errorf("document payload: %w", err)
	}
	return p, nil
}

// DecodeInbound parses one raw frame into its tagged variant.
// Any failure here is per-message: the caller logs, drops, and keeps reading.
func DecodeInbound(raw []byte) (Inbound, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("inbound frame: %w", err)
	}

	switch probe.Type {
	case "join":
		var m Join
		return decodeVariant(raw, &m)
	case "chat":
		var m Chat
		return decodeVariant(raw, &m)
	case "doc_edit":
		var m DocEdit
		return decodeVariant(raw, &m)
	default:
		return nil, fmt.Errorf("%w: %q", appErrors.ErrUnknownMessageType, probe.Type)
	}
}

func decodeVariant[T Inbound](raw []byte, m *T) (Inbound, error) {
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("inbound frame: %w", err)
	}
	if err := validate.Struct(*m); err != nil {
		return nil, fmt.Errorf("inbound frame: %w", err)
	}
	return *m, nil
}
