package user

// ProfileResponse - GET /me
type ProfileResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Phone         *string `json:"phone,omitempty"`
	Role          Role    `json:"role"`
	CompanyID     *string `json:"company_id,omitempty"`
	IsApproved    bool    `json:"is_approved"`
	EmailVerified bool    `json:"email_verified"`
	JustLoggedOut bool    `json:"just_logged_out,omitempty"`
}

// PermissionsResponse - GET /me/permissions. Server-computed mirror of the
// capability table; clients treat this as authoritative.
type PermissionsResponse struct {
	AccessLevel  AccessLevel  `json:"access_level"`
	Capabilities Capabilities `json:"capabilities"`
}

// CompanyTradieResponse - roster entry on the PM surface
type CompanyTradieResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Phone      *string `json:"phone,omitempty"`
	IsApproved bool    `json:"is_approved"`
}

func NewProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		CompanyID:     u.CompanyID,
		IsApproved:    u.IsApproved,
		EmailVerified: u.EmailVerified,
	}
}

func NewPermissionsResponse(u User) PermissionsResponse {
	level, caps := Resolve(&u)
	return PermissionsResponse{
		AccessLevel:  level,
		Capabilities: caps,
	}
}
