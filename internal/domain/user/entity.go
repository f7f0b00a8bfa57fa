package user

import "time"

type Role string

const (
	RoleTradie         Role = "tradie"          // Field worker ordering parts
	RoleSupplier       Role = "supplier"        // Manages catalog and fulfils orders
	RoleAdmin          Role = "admin"           // Platform administrator
	RoleProjectManager Role = "project_manager" // Manages a company and its tradies
)

// ParseRole normalises a stored role string. "contractor" is a legacy alias
// for the tradie role and is still present in older rows and tokens.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTradie, RoleSupplier, RoleAdmin, RoleProjectManager:
		return Role(s), true
	}
	if s == "contractor" {
		return RoleTradie, true
	}
	return "", false
}

type User struct {
	ID                     string
	CompanyID              *string
	Email                  string
	Phone                  *string
	FullName               string
	PasswordHash           *string
	Role                   Role
	IsApproved             bool
	EmailVerified          bool
	EmailVerificationToken *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsTradie reports whether the user holds the field-worker role.
func (u *User) IsTradie() bool {
	return u.Role == RoleTradie
}

// IsProjectManager checks if user manages a company
func (u *User) IsProjectManager() bool {
	return u.Role == RoleProjectManager
}

// IsIndependent reports whether the tradie has no company membership at all.
// A revoked member keeps its CompanyID and is therefore not independent.
func (u *User) IsIndependent() bool {
	return u.CompanyID == nil
}

// HasApprovedMembership reports whether ordering against a company account is
// permitted. Non-tradie roles are implicitly approved.
func (u *User) HasApprovedMembership() bool {
	if u.Role != RoleTradie {
		return true
	}
	return u.CompanyID != nil && u.IsApproved
}

// Validate enforces the approval invariant: an approved tradie must belong
// to a company. Approval is company-membership approval, nothing else.
func (u *User) Validate() error {
	if u.IsApproved && u.CompanyID == nil {
		return ErrApprovedWithoutCompany
	}
	return nil
}
