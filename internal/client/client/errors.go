package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)
