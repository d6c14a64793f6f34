package runtime

import (
	"context"
	"testing"

	"linguasync/domain"
	appErrors "linguasync/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubSink struct{}

func (s stubSink) Deliver(ctx context.Context, f domain.Frame) error { return nil }
func (s stubSink) IsOpen() bool                                      { return true }

func TestRegistry_Register_One_Participant(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	sink := stubSink{}

	// Given an empty registry
	req.Empty(registry.Snapshot())

	// When a participant registers
	req.NoError(registry.Register(participantID, sink))

	// Then it is live with the default language
	snapshot := registry.Snapshot()
	req.Len(snapshot, 1)
	req.Equal(participantID, snapshot[0].ID)
	req.Equal(domain.DefaultLang, snapshot[0].Lang)
	req.Equal(sink, snapshot[0].Sink)
	req.Equal(domain.DefaultLang, registry.Language(participantID))
}

func TestRegistry_Register_Duplicate_Id(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()

	// Given a registered participant
	req.NoError(registry.Register(participantID, stubSink{}))

	// When the same id registers again
	err := registry.Register(participantID, stubSink{})

	// Then the registration is rejected and the live set is unchanged
	req.ErrorIs(err, appErrors.ErrDuplicateParticipant)
	req.Len(registry.Snapshot(), 1)
}

func TestRegistry_SetLanguage_Keeps_Last_Declaration(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	req.NoError(registry.Register(participantID, stubSink{}))

	// When a participant declares a language several times
	registry.SetLanguage(participantID, "fr-FR")
	registry.SetLanguage(participantID, "es-ES")
	registry.SetLanguage(participantID, "de-DE")

	// Then only the most recent declaration remains
	req.Equal(domain.LangCode("de-DE"), registry.Language(participantID))
}

func TestRegistry_SetLanguage_Unknown_Id_Is_Noop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When a language is declared for an id that never registered
	registry.SetLanguage(uuid.NewString(), "fr-FR")

	// Then nothing is created
	req.Empty(registry.Snapshot())
}

func TestRegistry_Language_Falls_Back_To_Default(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Equal(domain.DefaultLang, registry.Language(uuid.NewString()))
}

func TestRegistry_Unregister_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID1 := uuid.NewString()
	participantID2 := uuid.NewString()
	req.NoError(registry.Register(participantID1, stubSink{}))
	req.NoError(registry.Register(participantID2, stubSink{}))
	registry.SetLanguage(participantID2, "es-ES")

	// When the same participant is unregistered twice
	registry.Unregister(participantID1)
	registry.Unregister(participantID1)

	// Then no error occurs and the other participant is untouched
	snapshot := registry.Snapshot()
	req.Len(snapshot, 1)
	req.Equal(participantID2, snapshot[0].ID)
	req.Equal(domain.LangCode("es-ES"), snapshot[0].Lang)

	_, ok := registry.Member(participantID1)
	req.False(ok)
}

func TestRegistry_Snapshot_Is_Point_In_Time(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	req.NoError(registry.Register(participantID, stubSink{}))

	// Given a snapshot taken before a disconnect
	snapshot := registry.Snapshot()

	// When the participant disconnects mid-fan-out
	registry.Unregister(participantID)

	// Then the taken snapshot still holds the member while the registry is empty
	req.Len(snapshot, 1)
	req.Empty(registry.Snapshot())
}
