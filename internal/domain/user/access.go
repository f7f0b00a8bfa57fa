package user

// AccessLevel is the coarse capability tag derived from role, company
// membership and approval state.
type AccessLevel string

const (
	// AccessPM is granted to project managers and to admin/supplier roles
	// acting in a managing capacity.
	AccessPM AccessLevel = "pm"
	// AccessApproved is a tradie with an approved company membership.
	AccessApproved AccessLevel = "approved"
	// AccessLimited is a tradie whose membership is pending or revoked.
	AccessLimited AccessLevel = "limited"
	// AccessIndependent is a tradie with no company at all. Capability-wise
	// identical to limited; the distinction only drives messaging.
	AccessIndependent AccessLevel = "independent"
)

// Capabilities is the full permission set for an actor. CanManageCompany
// (tradie roster, invitations) and CanManageCatalog (parts, pricing) are
// deliberately independent flags: a project manager holds the former, a
// supplier the latter, an admin both.
type Capabilities struct {
	CanViewPricing       bool `json:"can_view_pricing"`
	CanPlaceOrders       bool `json:"can_place_orders"`
	CanViewCompanyJobs   bool `json:"can_view_company_jobs"`
	CanSearchByJobNumber bool `json:"can_search_by_job_number"`
	CanAccessCart        bool `json:"can_access_cart"`
	CanManageCompany     bool `json:"can_manage_company"`
	CanManageCatalog     bool `json:"can_manage_catalog"`
}

// ResolveAccess derives the access level for an actor. Pure function of its
// inputs; the same table is used by route guards and the /me/permissions
// endpoint so there is exactly one interpretation of membership state.
func ResolveAccess(role Role, companyID *string, isApproved bool) AccessLevel {
	switch role {
	case RoleProjectManager, RoleAdmin, RoleSupplier:
		return AccessPM
	case RoleTradie:
		if companyID == nil {
			return AccessIndependent
		}
		if isApproved {
			return AccessApproved
		}
		return AccessLimited
	}
	return AccessIndependent
}

// CapabilitiesFor returns the capability set for an access level. pm is a
// superset of approved, approved of limited, and limited equals independent.
func CapabilitiesFor(level AccessLevel, role Role) Capabilities {
	switch level {
	case AccessPM:
		return Capabilities{
			CanViewPricing:       true,
			CanPlaceOrders:       true,
			CanViewCompanyJobs:   true,
			CanSearchByJobNumber: true,
			CanAccessCart:        true,
			CanManageCompany:     role == RoleProjectManager || role == RoleAdmin,
			CanManageCatalog:     role == RoleSupplier || role == RoleAdmin,
		}
	case AccessApproved:
		return Capabilities{
			CanViewPricing:       true,
			CanPlaceOrders:       true,
			CanViewCompanyJobs:   true,
			CanSearchByJobNumber: true,
			CanAccessCart:        true,
		}
	default:
		// limited and independent: read-only catalog browsing only
		return Capabilities{}
	}
}

// Resolve computes the access level and capabilities for a user in one call.
func Resolve(u *User) (AccessLevel, Capabilities) {
	level := ResolveAccess(u.Role, u.CompanyID, u.IsApproved)
	return level, CapabilitiesFor(level, u.Role)
}
