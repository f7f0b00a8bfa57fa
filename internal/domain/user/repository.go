package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	VerifyEmail(ctx context.Context, userID string) error
	GetByEmailVerificationToken(ctx context.Context, token string) (User, error)

	// GrantMembership sets company_id and is_approved = true in one write.
	GrantMembership(ctx context.Context, userID, companyID string) error

	// RevokeApproval flips is_approved to false but keeps company_id so the
	// membership history survives and the tradie can be re-invited.
	RevokeApproval(ctx context.Context, userID string) error

	// ListApprovedByCompany returns the approved tradie roster of a company.
	ListApprovedByCompany(ctx context.Context, companyID string) ([]User, error)
}
