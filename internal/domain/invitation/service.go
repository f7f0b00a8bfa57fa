package invitation

import "context"

// InvitationService defines the invitation lifecycle business logic
type InvitationService interface {
	// Issue creates a pending invitation with a fresh token and expiry.
	// Fails with ErrDuplicateActiveInvitation when the email already holds
	// a live offer.
	Issue(ctx context.Context, req IssueRequest) (InvitationResponse, error)

	// Resend reissues token and expiry on a pending (possibly expired)
	// invitation. Only the issuing project manager may resend.
	Resend(ctx context.Context, invitationID, projectManagerID string) error

	// Cancel forces a pending invitation to cancelled. Issuer only.
	Cancel(ctx context.Context, invitationID, projectManagerID string) error

	// Accept resolves the invitation by token and, in one transaction,
	// marks it accepted and grants the caller company membership.
	Accept(ctx context.Context, token, userID, userEmail string) (AcceptResponse, error)

	// Reject resolves the invitation by token and marks it rejected. The
	// caller's membership state is left untouched.
	Reject(ctx context.Context, token, userID, userEmail string) error

	// GetByToken retrieves invitation details by token (public endpoint).
	GetByToken(ctx context.Context, token string) (DetailResponse, error)

	// ListMyInvitations lists live invitations addressed to an email.
	ListMyInvitations(ctx context.Context, email string) ([]MyInvitationResponse, error)

	// ListIssued lists all invitations a project manager has issued.
	ListIssued(ctx context.Context, projectManagerID string) ([]InvitationResponse, error)
}
