// Package runtime moves inbound messages through the registry and the
// translation gateway. It orchestrates fan-out without containing wire
// or transport logic.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"linguasync/contract"
	"linguasync/domain"
	"linguasync/moderation"

	"github.com/abadojack/whatlanggo"
)

// Router interprets one decoded inbound message and produces zero or more
// envelopes, delivered independently per recipient. It never caches a
// recipient list across messages; every fan-out takes a fresh snapshot.
type Router struct {
	log              *slog.Logger
	registry         contract.IRegistry
	translator       contract.Translator
	moderator        *moderation.Moderator
	translateTimeout time.Duration
}

func NewRouter(log *slog.Logger, registry contract.IRegistry,
	translator contract.Translator, translateTimeout time.Duration) *Router {
	return &Router{
		log:              log,
		registry:         registry,
		translator:       translator,
		translateTimeout: translateTimeout,
	}
}

// WithModerator enables masking of inbound text before translation.
func (r *Router) WithModerator(m *moderation.Moderator) *Router {
	r.moderator = m
	return r
}

// HandleInbound decodes and dispatches one raw frame from one sender.
// It returns once fan-out has completed for that frame, which keeps a
// single sender's messages ordered. A malformed frame is dropped and the
// connection stays open.
func (r *Router) HandleInbound(ctx context.Context, senderID string, raw []byte) {
	msg, err := domain.DecodeInbound(raw)
	if err != nil {
		r.log.Warn("Dropping malformed inbound message", "sender", senderID, "error", err)
		return
	}

	switch m := msg.(type) {
	case domain.Join:
		r.handleJoin(ctx, senderID, m)
	case domain.Chat:
		r.fanout(ctx, senderID, m.Content, domain.ChatIDPrefix)
	case domain.DocEdit:
		payload, err := m.Payload()
		if err != nil {
			r.log.Warn("Dropping document edit with malformed payload", "sender", senderID, "error", err)
			return
		}
		r.log.Debug("Relaying document edit", "sender", senderID, "doc_id", payload.DocID)
		r.fanout(ctx, senderID, payload.Content, domain.DocIDPrefix)
	}
}

// handleJoin stores the declared language and confirms to the sender only.
func (r *Router) handleJoin(ctx context.Context, senderID string, m domain.Join) {
	r.registry.SetLanguage(senderID, m.Lang)

	member, ok := r.registry.Member(senderID)
	if !ok {
		return
	}
	if err := member.Sink.Deliver(ctx, domain.NewJoinConfirmed(m.Lang)); err != nil {
		r.log.Warn("Join confirmation not delivered", "sender", senderID, "error", err)
	}
}

// fanout produces one translated delivery per live-and-open member of the
// current snapshot, the sender included: the sender receives its own
// message translated into its own declared language.
func (r *Router) fanout(ctx context.Context, senderID, text string, prefix domain.IDPrefix) {
	source := r.registry.Language(senderID)

	if r.moderator != nil {
		text = r.moderator.Censor(text)
	}

	if info := whatlanggo.Detect(text); info.IsReliable() {
		r.log.Debug("Language detection",
			"sender", senderID,
			"declared", source,
			"detected", info.Lang.Iso6391())
	}

	var wg sync.WaitGroup
	for _, member := range r.registry.Snapshot() {
		if !member.Sink.IsOpen() {
			continue
		}
		wg.Add(1)
		go func(m contract.Member) {
			defer wg.Done()
			r.deliverTranslated(ctx, senderID, m, text, source, prefix)
		}(member)
	}
	wg.Wait()
}

// deliverTranslated is one independent translation+delivery unit. A gateway
// failure skips this recipient only; an incomplete mapping falls back to the
// untranslated text.
func (r *Router) deliverTranslated(ctx context.Context, senderID string,
	m contract.Member, text string, source domain.LangCode, prefix domain.IDPrefix) {
	callCtx, cancel := context.WithTimeout(ctx, r.translateTimeout)
	defer cancel()

	translations, err := r.translator.Translate(callCtx, text, source, []domain.LangCode{m.Lang})
	if err != nil {
		r.log.Warn("Translation failed, skipping recipient",
			"sender", senderID,
			"recipient", m.ID,
			"target_lang", m.Lang,
			"error", err)
		return
	}

	content, ok := translations[m.Lang]
	if !ok {
		content = text
	}

	envelope := domain.NewEnvelope(prefix, senderID, m.ID, content, source, m.Lang)
	if err := m.Sink.Deliver(ctx, envelope); err != nil {
		r.log.Warn("Envelope not delivered",
			"sender", senderID,
			"recipient", m.ID,
			"error", err)
	}
}
