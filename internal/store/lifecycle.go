package store

import (
	"fmt"

	"Devnovate/internal/models"
)

// transitions: куда можно перейти из каждого статуса.
// Удаление разрешено из любого статуса и здесь не указано.
var transitions = map[models.Status][]models.Status{
	models.StatusDraft:    {models.StatusPending},
	models.StatusPending:  {models.StatusApproved, models.StatusRejected},
	models.StatusRejected: {models.StatusPending},
	models.StatusApproved: {models.StatusHidden},
	models.StatusHidden:   {models.StatusApproved},
}

// CanTransition сообщает, может ли статья перейти из from в to.
func CanTransition(from, to models.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to models.Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
