package errors

import "fmt"

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrUnknownMessageType   = fmt.Errorf("unknown message type")
	ErrDuplicateParticipant = fmt.Errorf("participant already registered")
	ErrSinkClosed           = fmt.Errorf("delivery sink closed")
	ErrSlowConsumer         = fmt.Errorf("delivery sink full")
)
