package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:       "e1",
		Type:     EventTicketCreated,
		TicketID: "t1",
		Payload:  TicketCreatedPayload{CustomerID: "u1", Title: "T"},
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "t1", received[0].TicketID)
	payload := received[0].Payload.(TicketCreatedPayload)
	assert.Equal(t, "u1", payload.CustomerID)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventTicketAssigned, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketStatusChanged, TicketID: "t1"})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestPublishInvokesAllHandlersDespiteErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(EventTicketStatusChanged, func(_ context.Context, _ Event) error {
		order = append(order, "first")
		return errors.New("handler failure")
	})
	dispatcher.Subscribe(EventTicketStatusChanged, func(_ context.Context, _ Event) error {
		order = append(order, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketStatusChanged, TicketID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}
