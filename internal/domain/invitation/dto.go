package invitation

import (
	"time"

	"github.com/partflow/partflow-backend-go/internal/pkg/validator"
)

// IssueRequest - POST /pm/invitations
type IssueRequest struct {
	ProjectManagerID string  `json:"-"` // From JWT
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	PersonalMessage  *string `json:"personal_message,omitempty"`
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone format is invalid",
		})
	}

	if r.PersonalMessage != nil && len(*r.PersonalMessage) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "personal_message",
			Message: "personal_message must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AnswerRequest - POST /invitations/accept/{token} and reject/{token}
type AnswerRequest struct {
	Token string `json:"-"` // From Chi URL param
}

func (r *AnswerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	} else if !validator.IsValidUUID(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// InvitationResponse is the PM-surface shape of an invitation
type InvitationResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	Status       Status     `json:"status"`
	IsExpired    bool       `json:"is_expired"`
	ExpiresAt    time.Time  `json:"expires_at"`
	ResponseDate *time.Time `json:"response_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MyInvitationResponse - GET /invitations/my
type MyInvitationResponse struct {
	Token           string    `json:"token"`
	CompanyName     string    `json:"company_name"`
	InviterName     string    `json:"inviter_name"`
	PersonalMessage *string   `json:"personal_message,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// DetailResponse - GET /invitations/{token}, public
type DetailResponse struct {
	Token           string    `json:"token"`
	Email           string    `json:"email"`
	CompanyName     string    `json:"company_name"`
	InviterName     string    `json:"inviter_name"`
	PersonalMessage *string   `json:"personal_message,omitempty"`
	Status          Status    `json:"status"`
	IsExpired       bool      `json:"is_expired"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// AcceptResponse for invitation acceptance result
type AcceptResponse struct {
	Message     string `json:"message"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

func NewInvitationResponse(inv Invitation, now time.Time) InvitationResponse {
	return InvitationResponse{
		ID:           inv.ID,
		Email:        inv.Email,
		Phone:        inv.Phone,
		Status:       inv.Status,
		IsExpired:    inv.IsExpired(now),
		ExpiresAt:    inv.ExpiresAt,
		ResponseDate: inv.ResponseDate,
		CreatedAt:    inv.CreatedAt,
	}
}
