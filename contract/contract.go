//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"linguasync/domain"
)

// Translator is the remote translation gateway.
// A missing key in the returned mapping is a valid outcome meaning
// "no translation available for that language"; only transport or
// service failures surface as errors.
type Translator interface {
	Translate(ctx context.Context, text string, source domain.LangCode, targets []domain.LangCode) (map[domain.LangCode]string, error)
	Ping(ctx context.Context) error
}

// DeliverySink is one participant's exclusively-owned outbound handle.
// Only that participant's write pump drains it.
type DeliverySink interface {
	Deliver(ctx context.Context, f domain.Frame) error
	IsOpen() bool
}

// Member is one snapshot entry: a live participant and its delivery handle.
type Member struct {
	ID   string
	Lang domain.LangCode
	Sink DeliverySink
}

// IRegistry is the single source of truth for who is currently reachable.
type IRegistry interface {
	Register(id string, sink DeliverySink) error
	SetLanguage(id string, lang domain.LangCode)
	Language(id string) domain.LangCode
	Member(id string) (Member, bool)
	Unregister(id string)
	Snapshot() []Member
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
