package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves the gate's live-row reads from memory.
type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) VerifyEmail(ctx context.Context, userID string) error { return nil }

func (f *fakeUserRepo) GetByEmailVerificationToken(ctx context.Context, token string) (user.User, error) {
	return user.User{}, user.ErrVerificationTokenNotFound
}

func (f *fakeUserRepo) GrantMembership(ctx context.Context, userID, companyID string) error {
	u := f.users[userID]
	u.CompanyID = &companyID
	u.IsApproved = true
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) RevokeApproval(ctx context.Context, userID string) error {
	u := f.users[userID]
	u.IsApproved = false
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) ListApprovedByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return nil, nil
}

func mobileTestRouter(jwtSvc jwt.Service, repo user.UserRepository) http.Handler {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	r := chi.NewRouter()
	r.Route("/mobile", func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
		r.Use(AuthRequired(jwtSvc.JWTAuth()))
		r.Use(RequireSurface(user.RoleTradie))
		r.Use(TradieApprovalGate(repo, "/mobile"))

		r.Get("/home", ok)
		r.Get("/account", ok)
		r.Get("/parts", ok)
		r.Get("/parts/popular", ok)
		r.Get("/search", ok)
		r.Get("/notifications", ok)
		r.Get("/pending-approval", ok)
		r.Get("/cart", ok)
		r.Get("/orders", ok)
		r.Get("/jobs", ok)
		r.Get("/favorites", ok)
	})
	return r
}

func TestTradieApprovalGate_OpenSectionsServeUnapproved(t *testing.T) {
	jwtSvc := newTestJWT(t)
	repo := &fakeUserRepo{users: map[string]user.User{
		"indie": {ID: "indie", Email: "indie@example.com", Role: user.RoleTradie},
	}}
	router := mobileTestRouter(jwtSvc, repo)
	token := accessTokenFor(t, jwtSvc, "indie", user.RoleTradie, nil, false)

	openPaths := []string{
		"/mobile/home",
		"/mobile/account",
		"/mobile/parts",
		"/mobile/parts/popular",
		"/mobile/search",
		"/mobile/notifications",
		"/mobile/pending-approval",
	}
	for _, path := range openPaths {
		rec := doGet(t, router, path, token)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestTradieApprovalGate_GatedSectionsRejectUnapproved(t *testing.T) {
	jwtSvc := newTestJWT(t)
	repo := &fakeUserRepo{users: map[string]user.User{
		"indie": {ID: "indie", Email: "indie@example.com", Role: user.RoleTradie},
	}}
	router := mobileTestRouter(jwtSvc, repo)
	token := accessTokenFor(t, jwtSvc, "indie", user.RoleTradie, nil, false)

	gatedPaths := []string{
		"/mobile/cart",
		"/mobile/orders",
		"/mobile/jobs",
		"/mobile/favorites",
	}
	for _, path := range gatedPaths {
		rec := doGet(t, router, path, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)

		var body struct {
			Error struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "APPROVAL_REQUIRED", body.Error.Code)
		assert.Equal(t, "/mobile/pending-approval", body.Error.Details["redirect"])
	}
}

func TestTradieApprovalGate_ApprovedMemberPassesEverywhere(t *testing.T) {
	jwtSvc := newTestJWT(t)
	companyID := "c1"
	repo := &fakeUserRepo{users: map[string]user.User{
		"member": {ID: "member", Email: "member@example.com", Role: user.RoleTradie, CompanyID: &companyID, IsApproved: true},
	}}
	router := mobileTestRouter(jwtSvc, repo)
	token := accessTokenFor(t, jwtSvc, "member", user.RoleTradie, &companyID, true)

	for _, path := range []string{"/mobile/home", "/mobile/cart", "/mobile/orders", "/mobile/jobs"} {
		rec := doGet(t, router, path, token)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

// A revoke takes effect immediately even while the token still claims
// approved membership.
func TestTradieApprovalGate_RevokeLandsMidSession(t *testing.T) {
	jwtSvc := newTestJWT(t)
	companyID := "c1"
	repo := &fakeUserRepo{users: map[string]user.User{
		"member": {ID: "member", Email: "member@example.com", Role: user.RoleTradie, CompanyID: &companyID, IsApproved: true},
	}}
	router := mobileTestRouter(jwtSvc, repo)
	token := accessTokenFor(t, jwtSvc, "member", user.RoleTradie, &companyID, true)

	rec := doGet(t, router, "/mobile/cart", token)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, repo.RevokeApproval(context.Background(), "member"))

	rec = doGet(t, router, "/mobile/cart", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Open sections keep working for the now-limited member
	rec = doGet(t, router, "/mobile/pending-approval", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsOpenSection(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home", true},
		{"/parts", true},
		{"/parts/popular", true},
		{"/partsandmore", false},
		{"/cart", false},
		{"/", true},
		{"", true},
		{"/pending-approval", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isOpenSection(tt.path), "path %q", tt.path)
	}
}
