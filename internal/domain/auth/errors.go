package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrCompanyIDRequired   = errors.New("company id required")
	ErrInsufficientRole    = errors.New("insufficient permissions")
	ErrMissingAccessClaims = errors.New("access token is missing required claims")
)
