package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrSessionExpired      = errors.New("session expired")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrEmailNotVerified    = errors.New("email not verified")
)
