package services

import (
	"context"

	"linguasync/contract"
	"linguasync/runtime"
)

// IRelayService is the surface the transport layer drives: connection
// lifecycle plus the inbound message stream.
type IRelayService interface {
	Connect(id string, sink contract.DeliverySink) error
	Disconnect(id string)
	HandleInbound(ctx context.Context, senderID string, raw []byte)
}

type RelayService struct {
	registry contract.IRegistry
	router   *runtime.Router
}

func NewRelayService(registry contract.IRegistry, router *runtime.Router) *RelayService {
	return &RelayService{registry: registry, router: router}
}

func (s *RelayService) Connect(id string, sink contract.DeliverySink) error {
	return s.registry.Register(id, sink)
}

// Disconnect is idempotent: removing an unknown id is a no-op so a
// second teardown event never corrupts the registry.
func (s *RelayService) Disconnect(id string) {
	s.registry.Unregister(id)
}

func (s *RelayService) HandleInbound(ctx context.Context, senderID string, raw []byte) {
	s.router.HandleInbound(ctx, senderID, raw)
}
