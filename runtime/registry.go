package runtime

import (
	"fmt"
	"sync"

	"linguasync/contract"
	"linguasync/domain"
	appErrors "linguasync/errors"

	"github.com/samber/lo"
)

type entry struct {
	sink contract.DeliverySink
	lang domain.LangCode
}

// Registry holds the live participant set. A single map owns both the
// delivery handle and the declared language, so the two can never diverge
// during register/unregister.
type Registry struct {
	mu      sync.RWMutex
	members map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[string]*entry)}
}

// Register inserts a participant with the default language.
// Duplicate ids are rejected; the uuid-based generation scheme makes
// that a programming error rather than an operational case.
func (r *Registry) Register(id string, sink contract.DeliverySink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; ok {
		return fmt.Errorf("%w: %s", appErrors.ErrDuplicateParticipant, id)
	}
	r.members[id] = &entry{sink: sink, lang: domain.DefaultLang}
	return nil
}

// SetLanguage overwrites the stored language for an existing participant.
// Unknown ids are a no-op: a join can race with a teardown.
func (r *Registry) SetLanguage(id string, lang domain.LangCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.members[id]; ok {
		e.lang = lang
	}
}

// Language resolves a participant's declared language, falling back to
// the default for unknown or undeclared participants.
func (r *Registry) Language(id string) domain.LangCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.members[id]; ok {
		return e.lang
	}
	return domain.DefaultLang
}

// Member resolves a single live participant.
func (r *Registry) Member(id string) (contract.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.members[id]
	if !ok {
		return contract.Member{}, false
	}
	return contract.Member{ID: id, Lang: e.lang, Sink: e.sink}, true
}

// Unregister removes a participant and its language entry atomically.
// Removing an absent id is a no-op so teardown stays idempotent.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
}

// Snapshot returns a point-in-time copy of the live set. Iteration order
// is unspecified; membership may change after the snapshot is taken and
// callers must tolerate delivering into a closing sink.
func (r *Registry) Snapshot() []contract.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.MapToSlice(r.members, func(id string, e *entry) contract.Member {
		return contract.Member{ID: id, Lang: e.lang, Sink: e.sink}
	})
}
