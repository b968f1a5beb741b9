package user

import "errors"

var ErrUserNotFound = errors.New("user not found")

var ErrEmailExists = errors.New("email already in use")
