package request

import "errors"

var ErrRequestNotFound = errors.New("item request not found")
