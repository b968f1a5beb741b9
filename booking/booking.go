package booking

import (
	"time"

	"github.com/upostnikova0/java-shareit/user"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID     int64     `json:"id"`
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status Status    `json:"status"`
	Booker user.User `json:"booker"`
	Item   ItemInfo  `json:"item"`
}

// ItemInfo is the slice of the booked item carried on a booking.
type ItemInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerID   int64  `json:"ownerId"`
	Available bool   `json:"available"`
}

type CreateRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// Decide applies the one-shot status transition: only a WAITING booking can
// be decided, and the decision is terminal.
func Decide(current Status, approve bool) (Status, error) {
	if current != StatusWaiting {
		return "", ErrAlreadyDecided
	}

	if approve {
		return StatusApproved, nil
	}

	return StatusRejected, nil
}
