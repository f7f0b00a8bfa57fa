package invitation

import "time"

// Status represents the stored status of an invitation. Expiry is never
// stored: a pending row past its expiry reads as expired through
// IsExpired, and only an explicit resend reissues it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status is absorbing for the row.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusCancelled
}

// Invitation is a token-bearing offer of company membership issued by a
// project manager to a tradie's email.
type Invitation struct {
	ID               string
	ProjectManagerID string
	CompanyID        string
	TradieID         *string // nil until the invitee has an account
	Email            string
	Phone            *string
	PersonalMessage  *string
	Token            string
	ExpiresAt        time.Time
	Status           Status
	ResponseDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InvitationWithDetails carries joined names for display surfaces.
type InvitationWithDetails struct {
	Invitation
	CompanyName string
	InviterName string
}

// IsExpired is the single expiry predicate. Every reader of invitation
// status must go through it so there is one interpretation of the boundary.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.Status == StatusPending && now.After(i.ExpiresAt)
}

// CanBeAnswered reports whether accept or reject is currently legal.
func (i *Invitation) CanBeAnswered(now time.Time) bool {
	return i.Status == StatusPending && !i.IsExpired(now)
}

// CanBeResent reports whether resend is legal. An expired-but-pending row
// is eligible: resend reissues the token and expiry and keeps it pending.
func (i *Invitation) CanBeResent() bool {
	return i.Status == StatusPending
}
