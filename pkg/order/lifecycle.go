package order

import (
	"fmt"
	"time"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// transitions is the order state machine: for each state, the states an
// order may move to. Delivered and Cancelled are terminal. Payment is not
// a precondition for delivery, so delivery may skip ahead from Pending or
// Processing, but no transition moves backwards.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusShipped, models.StatusDelivered, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusDelivered, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered},
	models.StatusDelivered:  {},
	models.StatusCancelled:  {},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// applyTransition moves an order to a new status and applies the side
// effects of the state being entered. Entering Processing marks the order
// paid; entering Delivered marks it delivered. The timestamps are written
// at most once and never cleared.
func applyTransition(o *models.Order, to models.OrderStatus) error {
	if to == o.Status {
		return nil
	}
	if !canTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, o.Status, to)
	}

	o.Status = to
	now := time.Now()

	switch to {
	case models.StatusProcessing:
		if !o.IsPaid {
			o.IsPaid = true
			o.PaidAt = &now
		}
	case models.StatusDelivered:
		if !o.IsDelivered {
			o.IsDelivered = true
			o.DeliveredAt = &now
		}
	}
	return nil
}
