package response

import (
	"errors"
	"net/http"

	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/company"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "INVALID_TOKEN", "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "TOKEN_EXPIRED", "Token expired")
	case errors.Is(err, auth.ErrSessionExpired):
		Unauthorized(w, "SESSION_EXPIRED", "Session expired, please log in again")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "EMAIL_NOT_VERIFIED", "Email not verified")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "INVALID_ROLE", "Unknown role")
	case errors.Is(err, user.ErrVerificationTokenNotFound):
		NotFound(w, "Verification token not found")
	case errors.Is(err, user.ErrApprovalRequired):
		Forbidden(w, "APPROVAL_REQUIRED", "Approved company membership required")
	case errors.Is(err, user.ErrNotApprovedMember):
		Conflict(w, "NOT_APPROVED_MEMBER", "User is not an approved company member")
	case errors.Is(err, user.ErrNotCompanyMember):
		Forbidden(w, "NOT_COMPANY_MEMBER", "User does not belong to your company")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "COMPANY_REQUIRED", "No company associated with this account")

	// Invitation domain errors
	case errors.Is(err, invitation.ErrTokenNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrTokenExpired):
		BadRequest(w, "INVITATION_EXPIRED", "Invitation link has expired")
	case errors.Is(err, invitation.ErrInvalidState):
		Conflict(w, "INVITATION_ALREADY_ANSWERED", "Invitation is no longer pending")
	case errors.Is(err, invitation.ErrDuplicateActiveInvitation):
		Conflict(w, "DUPLICATE_INVITATION", "An active invitation already exists for this email")
	case errors.Is(err, invitation.ErrEmailMismatch):
		Forbidden(w, "EMAIL_MISMATCH", "Invitation was issued to a different email")
	case errors.Is(err, invitation.ErrNotIssuer):
		Forbidden(w, "NOT_ISSUER", "Only the issuing project manager can do this")
	case errors.Is(err, invitation.ErrInviteeNotTradie):
		Conflict(w, "INVITEE_NOT_TRADIE", "Invited email belongs to a non-tradie account")
	case errors.Is(err, invitation.ErrAlreadyMember):
		Conflict(w, "ALREADY_MEMBER", "User is already an approved member of a company")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrNameExists):
		Conflict(w, "COMPANY_NAME_EXISTS", "Company name already exists")
	case errors.Is(err, company.ErrInvalidPriceTier):
		BadRequest(w, "INVALID_PRICE_TIER", "Unknown price tier")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
