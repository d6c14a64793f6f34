package ws

import (
	"context"
	"sync"

	"linguasync/domain"
	appErrors "linguasync/errors"
)

// Sink is one connection's buffered outbound queue. The router and the
// lifecycle handler push frames in; the connection's write pump drains
// them in order to the socket.
type Sink struct {
	frames chan domain.Frame
	closed chan struct{}
	once   sync.Once
}

func NewSink(bufferSize int) *Sink {
	return &Sink{
		frames: make(chan domain.Frame, bufferSize),
		closed: make(chan struct{}),
	}
}

// Deliver queues one frame without blocking the caller's fan-out: a full
// buffer is reported as backpressure rather than waited out, so one slow
// reader cannot stall deliveries to anyone else.
func (s *Sink) Deliver(ctx context.Context, f domain.Frame) error {
	select {
	case <-s.closed:
		return appErrors.ErrSinkClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case s.frames <- f:
		return nil
	default:
		return appErrors.ErrSlowConsumer
	}
}

func (s *Sink) IsOpen() bool {
	select {
	case <-s.closed:
		return false
	default:
		return true
	}
}

// Close is idempotent; frames already queued are discarded by the pump.
func (s *Sink) Close() {
	s.once.Do(func() { close(s.closed) })
}

func (s *Sink) Frames() <-chan domain.Frame {
	return s.frames
}

func (s *Sink) Closed() <-chan struct{} {
	return s.closed
}
