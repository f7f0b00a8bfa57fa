package user

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUserEmailExists           = errors.New("email already registered")
	ErrInvalidRole               = errors.New("invalid role")
	ErrApprovedWithoutCompany    = errors.New("approved membership requires a company")
	ErrEmailNotVerified          = errors.New("email not verified")
	ErrVerificationTokenNotFound = errors.New("email verification token not found")
	ErrNotApprovedMember         = errors.New("user is not an approved company member")
	ErrNotCompanyMember          = errors.New("user does not belong to this company")
	ErrCompanyIDRequired         = errors.New("company ID is required")
	ErrApprovalRequired          = errors.New("company approval required")
)
