package invitation

import "errors"

var (
	ErrTokenNotFound             = errors.New("invitation token not found")
	ErrTokenExpired              = errors.New("invitation token has expired")
	ErrInvalidState              = errors.New("invitation is not in a state that allows this action")
	ErrDuplicateActiveInvitation = errors.New("email already has an active invitation")
	ErrEmailMismatch             = errors.New("your email does not match the invitation email")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrNotIssuer                 = errors.New("invitation was issued by another project manager")
	ErrInviteeNotTradie          = errors.New("invitee account is not a tradie")
	ErrAlreadyMember             = errors.New("user already has an approved company membership")
)
