package item

import "errors"

var ErrItemNotFound = errors.New("item not found")

var ErrRequestNotFound = errors.New("item request not found")

var ErrRentalNotCompleted = errors.New("rental not completed")

var ErrEmptyComment = errors.New("comment text must not be empty")
