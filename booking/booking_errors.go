package booking

import "errors"

var ErrBookingNotFound = errors.New("booking not found")

var ErrAlreadyDecided = errors.New("booking already decided")

var ErrItemUnavailable = errors.New("item not available for booking")

var ErrInvalidDateRange = errors.New("booking end must be after its start")

var ErrUnsupportedState = errors.New("unsupported state")
