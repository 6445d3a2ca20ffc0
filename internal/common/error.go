// Package common defines shared constants and sentinel errors used across
// the layers of bookmarkd. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrorUnauthenticated covers a missing, invalid or expired
	// token as well as a token whose subject no longer exists; callers must
	// not be able to tell those apart.
	ErrorUnauthenticated    = errors.New("unauthenticated")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorUserAlreadyExists  = errors.New("user already exists")

	// ErrorAccessDenied is returned both when a bookmark does not exist and
	// when it belongs to another user.
	ErrorAccessDenied = errors.New("access to resources denied")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrCorruptHash means a stored password hash could not be decoded.
	ErrCorruptHash = errors.New("corrupt password hash")
)
