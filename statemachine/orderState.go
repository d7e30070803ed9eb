package statemachine

import (
	"fmt"

	"github.com/tastybites/tastybites-api/models"
)

// validTransitions is the authoritative order-status graph. delivered and
// cancelled are terminal. The customer cancel path has an extra ownership
// rule enforced in the orders controller.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:        {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:      {models.OrderPreparing},
	models.OrderPreparing:      {models.OrderOutForDelivery},
	models.OrderOutForDelivery: {models.OrderDelivered},
}

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	return validTransitions[status]
}

func IsTerminal(status models.OrderStatus) bool {
	return len(validTransitions[status]) == 0
}

// CanTransition checks whether an order may move from one state to another.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid transition: %s -> %s is not allowed; valid transitions from %s are: %s",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := validTransitions[status]
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
