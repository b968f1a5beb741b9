package request

import "time"

type ItemRequest struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	RequesterID int64          `json:"requesterId"`
	Created     time.Time      `json:"created"`
	Items       []AnsweredItem `json:"items"`
}

// AnsweredItem is an item created in response to a request.
type AnsweredItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type NewRequest struct {
	Description string `json:"description" binding:"required"`
}
