package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
