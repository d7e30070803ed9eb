package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastybites/tastybites-api/models"
)

func TestCanTransitionHappyPath(t *testing.T) {
	chain := []models.OrderStatus{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		require.NoError(t, CanTransition(chain[i], chain[i+1]))
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	err := CanTransition(models.OrderPending, models.OrderDelivered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")

	assert.Error(t, CanTransition(models.OrderPending, models.OrderPreparing))
	assert.Error(t, CanTransition(models.OrderConfirmed, models.OrderOutForDelivery))
}

func TestCancelOnlyFromPending(t *testing.T) {
	require.NoError(t, CanTransition(models.OrderPending, models.OrderCancelled))

	assert.Error(t, CanTransition(models.OrderConfirmed, models.OrderCancelled))
	assert.Error(t, CanTransition(models.OrderPreparing, models.OrderCancelled))
	assert.Error(t, CanTransition(models.OrderOutForDelivery, models.OrderCancelled))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderDelivered))
	assert.True(t, IsTerminal(models.OrderCancelled))
	assert.False(t, IsTerminal(models.OrderPending))

	err := CanTransition(models.OrderDelivered, models.OrderPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal state")
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.OrderConfirmed, models.OrderCancelled},
		ValidTransitionsFrom(models.OrderPending))
	assert.Empty(t, ValidTransitionsFrom(models.OrderCancelled))
}
