package auth

import (
	"context"

	"github.com/partflow/partflow-backend-go/internal/domain/user"
)

// AuthService owns the session lifecycle: anonymous -> authenticating ->
// authenticated -> (logged out | session expired). It is the only writer of
// the cached session state the guards read.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, loginReq LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)

	// Refresh rotates the token pair. A revoked or expired refresh token
	// resolves to ErrSessionExpired, never a silent retry.
	Refresh(ctx context.Context, refreshToken string, sessionReq SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the refresh token and arms the one-shot just-logged-out
	// marker consumed by the next Me call for that user.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the live user row plus the one-shot just-logged-out flag,
	// which is cleared on first read.
	Me(ctx context.Context, userID string) (user.ProfileResponse, error)
}
