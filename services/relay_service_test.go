package services

import (
	"testing"

	"linguasync/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRelayService_Lifecycle_Delegates_To_Registry(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockIRegistry(ctrl)
	sink := mocks.NewMockDeliverySink(ctrl)
	participantID := uuid.NewString()

	registry.EXPECT().Register(participantID, sink).Return(nil).Times(1)
	registry.EXPECT().Unregister(participantID).Times(1)

	service := NewRelayService(registry, nil)

	req.NoError(service.Connect(participantID, sink))
	service.Disconnect(participantID)
}
