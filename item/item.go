package item

import "time"

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// Detail is the item view served to callers: the item plus its comments,
// and for the owner the closest approved bookings on either side of now.
type Detail struct {
	Item
	LastBooking *BookingRef `json:"lastBooking"`
	NextBooking *BookingRef `json:"nextBooking"`
	Comments    []Comment   `json:"comments"`
}

// BookingRef is the booking slice the catalog knows about; the booking
// engine produces these.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type NewItem struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// Patch carries a partial update; nil fields keep their current value.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}
