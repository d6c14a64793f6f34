package ws

import (
	"context"
	"testing"

	"linguasync/domain"
	appErrors "linguasync/errors"

	"github.com/stretchr/testify/require"
)

func TestSink_Delivers_In_Order(t *testing.T) {
	req := require.New(t)
	sink := NewSink(4)

	// When frames are queued
	req.NoError(sink.Deliver(context.Background(), domain.NewInit("sock_a")))
	req.NoError(sink.Deliver(context.Background(), domain.NewReady()))

	// Then the pump sees them in queue order
	first := <-sink.Frames()
	second := <-sink.Frames()
	_, ok := first.(domain.Init)
	req.True(ok)
	_, ok = second.(domain.Ready)
	req.True(ok)
}

func TestSink_Full_Buffer_Reports_Backpressure(t *testing.T) {
	req := require.New(t)
	sink := NewSink(1)

	req.NoError(sink.Deliver(context.Background(), domain.NewReady()))

	// When the buffer is full, Deliver must not block the fan-out
	err := sink.Deliver(context.Background(), domain.NewReady())

	req.ErrorIs(err, appErrors.ErrSlowConsumer)
}

func TestSink_Deliver_After_Close(t *testing.T) {
	req := require.New(t)
	sink := NewSink(4)

	req.True(sink.IsOpen())
	sink.Close()

	req.False(sink.IsOpen())
	err := sink.Deliver(context.Background(), domain.NewReady())
	req.ErrorIs(err, appErrors.ErrSinkClosed)
}

func TestSink_Close_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	sink := NewSink(4)

	// When Close is invoked twice, e.g. read loop and write pump both
	// observing the same failure
	sink.Close()
	sink.Close()

	req.False(sink.IsOpen())
}

func TestSink_Deliver_Respects_Context(t *testing.T) {
	req := require.New(t)
	sink := NewSink(4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Deliver(ctx, domain.NewReady())
	req.ErrorIs(err, context.Canceled)
}
