// Package domain contains core concepts of the relay.
// This file defines the outbound frames written to a participant's socket.
package domain

import (
	"fmt"
	"time"
)

// IDPrefix distinguishes envelope ids produced by chat and document fan-out.
type IDPrefix string

const (
	ChatIDPrefix IDPrefix = "msg_"
	DocIDPrefix  IDPrefix = "doc_"
)

// Frame is anything that can be queued on a participant's delivery sink.
type Frame interface {
	frame()
}

// Init is the handshake frame carrying the server-assigned connection id.
type Init struct {
	Type     string `json:"type"`
	SocketID string `json:"socketId"`
}

// Ready signals that the relay accepts inbound messages for this connection.
type Ready struct {
	Type string `json:"type"`
}

// JoinConfirmed acknowledges a language declaration to the sender only.
type JoinConfirmed struct {
	Type string   `json:"type"`
	Lang LangCode `json:"lang"`
}

// Envelope is one translated delivery for one recipient.
// Ids are coarse timestamp+recipient trace ids: best effort, never used
// for deduplication or ordering.
type Envelope struct {
	Type       string   `json:"type"`
	ID         string   `json:"id"`
	Sender     string   `json:"sender"`
	Content    string   `json:"content"`
	SourceLang LangCode `json:"sourceLang"`
	TargetLang LangCode `json:"targetLang"`
}

func (Init) frame()          {}
func (Ready) frame()         {}
func (JoinConfirmed) frame() {}
func (Envelope) frame()      {}

func NewInit(socketID string) Init {
	return Init{Type: "INIT", SocketID: socketID}
}

func NewReady() Ready {
	return Ready{Type: "READY"}
}

func NewJoinConfirmed(lang LangCode) JoinConfirmed {
	return JoinConfirmed{Type: "JOIN_CONFIRMED", Lang: lang}
}

func NewEnvelope(prefix IDPrefix, sender, recipient, content string, source, target LangCode) Envelope {
	return Envelope{
		Type:       "msg",
		ID:         fmt.Sprintf("%s%d_%s", prefix, time.Now().UnixMilli(), recipient),
		Sender:     sender,
		Content:    content,
		SourceLang: source,
		TargetLang: target,
	}
}
