package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveAccess(t *testing.T) {
	companyID := strPtr("0193a1c2-0000-7000-8000-000000000001")

	tests := []struct {
		name       string
		role       Role
		companyID  *string
		isApproved bool
		want       AccessLevel
	}{
		{"project manager", RoleProjectManager, companyID, true, AccessPM},
		{"admin", RoleAdmin, nil, false, AccessPM},
		{"supplier", RoleSupplier, nil, false, AccessPM},
		{"approved tradie", RoleTradie, companyID, true, AccessApproved},
		{"revoked tradie keeps company", RoleTradie, companyID, false, AccessLimited},
		{"independent tradie", RoleTradie, nil, false, AccessIndependent},
		{"unknown role", Role("ghost"), nil, false, AccessIndependent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAccess(tt.role, tt.companyID, tt.isApproved)
			assert.Equal(t, tt.want, got)
		})
	}
}

// capabilityFlags flattens a Capabilities struct for superset comparison.
func capabilityFlags(c Capabilities) []bool {
	return []bool{
		c.CanViewPricing,
		c.CanPlaceOrders,
		c.CanViewCompanyJobs,
		c.CanSearchByJobNumber,
		c.CanAccessCart,
		c.CanManageCompany,
		c.CanManageCatalog,
	}
}

func isSuperset(a, b Capabilities) bool {
	af, bf := capabilityFlags(a), capabilityFlags(b)
	for i := range af {
		if bf[i] && !af[i] {
			return false
		}
	}
	return true
}

func TestCapabilityMonotonicity(t *testing.T) {
	pm := CapabilitiesFor(AccessPM, RoleProjectManager)
	approved := CapabilitiesFor(AccessApproved, RoleTradie)
	limited := CapabilitiesFor(AccessLimited, RoleTradie)
	independent := CapabilitiesFor(AccessIndependent, RoleTradie)

	assert.True(t, isSuperset(pm, approved), "pm must grant everything approved grants")
	assert.True(t, isSuperset(approved, limited), "approved must grant everything limited grants")
	assert.Equal(t, limited, independent, "limited and independent are capability-identical")
}

func TestCapabilitySeparationOfManagement(t *testing.T) {
	pm := CapabilitiesFor(AccessPM, RoleProjectManager)
	assert.True(t, pm.CanManageCompany)
	assert.False(t, pm.CanManageCatalog, "a project manager does not manage the catalog")

	supplier := CapabilitiesFor(AccessPM, RoleSupplier)
	assert.False(t, supplier.CanManageCompany, "a supplier does not manage tradie membership")
	assert.True(t, supplier.CanManageCatalog)

	admin := CapabilitiesFor(AccessPM, RoleAdmin)
	assert.True(t, admin.CanManageCompany)
	assert.True(t, admin.CanManageCatalog)
}

func TestApprovedCapabilitiesExcludeManagement(t *testing.T) {
	approved := CapabilitiesFor(AccessApproved, RoleTradie)
	assert.True(t, approved.CanPlaceOrders)
	assert.True(t, approved.CanAccessCart)
	assert.False(t, approved.CanManageCompany)
	assert.False(t, approved.CanManageCatalog)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("contractor")
	assert.True(t, ok)
	assert.Equal(t, RoleTradie, role, "contractor is a legacy alias for tradie")

	_, ok = ParseRole("wizard")
	assert.False(t, ok)
}

func TestUserValidateApprovalInvariant(t *testing.T) {
	u := User{Role: RoleTradie, IsApproved: true, CompanyID: nil}
	assert.ErrorIs(t, u.Validate(), ErrApprovedWithoutCompany)

	u.CompanyID = strPtr("0193a1c2-0000-7000-8000-000000000001")
	assert.NoError(t, u.Validate())
}

func TestHasApprovedMembership(t *testing.T) {
	companyID := strPtr("0193a1c2-0000-7000-8000-000000000001")

	pm := User{Role: RoleProjectManager}
	assert.True(t, pm.HasApprovedMembership(), "non-tradie roles are implicitly approved")

	revoked := User{Role: RoleTradie, CompanyID: companyID, IsApproved: false}
	assert.False(t, revoked.HasApprovedMembership())
	assert.False(t, revoked.IsIndependent(), "revoked member still carries its company")

	independent := User{Role: RoleTradie}
	assert.True(t, independent.IsIndependent())
}
