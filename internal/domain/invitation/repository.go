package invitation

import (
	"context"
	"time"
)

// InvitationRepository defines the interface for invitation data access.
// All status transitions are compare-and-swap: the UPDATE is conditioned on
// the current status so two concurrent accepts, or an accept racing a
// cancel, cannot both succeed. A transition that matches no row returns
// ErrInvalidState (or ErrInvitationNotFound when the row does not exist).
type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	GetByToken(ctx context.Context, token string) (Invitation, error)

	// GetByTokenWithDetails joins company and inviter names for display.
	GetByTokenWithDetails(ctx context.Context, token string) (InvitationWithDetails, error)

	GetByID(ctx context.Context, id string) (Invitation, error)

	// ExistsActiveByEmail checks for a live (pending, unexpired) invitation
	// for this email anywhere on the platform. A tradie holds at most one
	// live company offer at a time.
	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)

	// ListActiveByEmail lists live invitations for the invitee surface.
	ListActiveByEmail(ctx context.Context, email string) ([]InvitationWithDetails, error)

	// ListByProjectManager lists all invitations issued by a PM, newest first.
	ListByProjectManager(ctx context.Context, projectManagerID string) ([]Invitation, error)

	// MarkAccepted transitions pending -> accepted and stamps response_date.
	MarkAccepted(ctx context.Context, id string) error

	// MarkRejected transitions pending -> rejected and stamps response_date.
	MarkRejected(ctx context.Context, id string) error

	// MarkCancelled transitions pending -> cancelled.
	MarkCancelled(ctx context.Context, id string) error

	// UpdateToken reissues token and expiry on a still-pending row (resend).
	UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error
}
