package membership

import (
	"context"

	"github.com/partflow/partflow-backend-go/internal/domain/user"
)

// MembershipService manages an existing member's approval state. It is the
// only writer of is_approved outside the invitation accept path.
type MembershipService interface {
	// Revoke flips the member's is_approved to false. The company link is
	// retained so the history survives and the tradie can be re-invited.
	Revoke(ctx context.Context, req RevokeRequest) error

	// ListCompanyTradies returns the approved tradie roster of the PM's company.
	ListCompanyTradies(ctx context.Context, projectManagerID string) ([]user.CompanyTradieResponse, error)
}
