// Package common defines shared constants and sentinel errors used across
// client and server layers of Gatehouse. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth core errors. Every failure an AuthService operation returns is
	// one of these; transports map them to protocol codes without ever
	// inspecting error text.
	ErrorEmailExists        = errors.New("email already exists")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorHashing            = errors.New("password hashing error")
	ErrorSigning            = errors.New("token signing error")
	ErrorInternal           = errors.New("internal error")
	ErrorStoreUnavailable   = errors.New("store unavailable")

	// Credential hash errors (stored hash cannot be parsed).
	ErrorMalformedHash = errors.New("malformed password hash")

	// Token lifecycle errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)
