package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) jwt.Service {
	t.Helper()
	return jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func accessTokenFor(t *testing.T, jwtSvc jwt.Service, userID string, role user.Role, companyID *string, isApproved bool) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken(userID, userID+"@example.com", companyID, role, isApproved)
	require.NoError(t, err)
	return token
}

func surfaceTestRouter(jwtSvc jwt.Service, allowed ...user.Role) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
		r.Use(AuthRequired(jwtSvc.JWTAuth()))
		r.Use(RequireSurface(allowed...))
		r.Get("/guarded", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func doGet(t *testing.T, handler http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireSurface_AllowsListedRoles(t *testing.T) {
	jwtSvc := newTestJWT(t)
	router := surfaceTestRouter(jwtSvc, user.RoleProjectManager, user.RoleAdmin)

	for _, role := range []user.Role{user.RoleProjectManager, user.RoleAdmin} {
		token := accessTokenFor(t, jwtSvc, "u1", role, nil, false)
		rec := doGet(t, router, "/guarded", token)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestRequireSurface_RejectsWithRedirectHint(t *testing.T) {
	jwtSvc := newTestJWT(t)
	router := surfaceTestRouter(jwtSvc, user.RoleProjectManager, user.RoleAdmin)

	token := accessTokenFor(t, jwtSvc, "u1", user.RoleTradie, nil, false)
	rec := doGet(t, router, "/guarded", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ROLE_MISMATCH", body.Error.Code)
	assert.Equal(t, "/mobile", body.Error.Details["redirect"])
}

func TestRequireSurface_SupplierRedirectsHome(t *testing.T) {
	jwtSvc := newTestJWT(t)
	router := surfaceTestRouter(jwtSvc, user.RoleTradie)

	token := accessTokenFor(t, jwtSvc, "u1", user.RoleSupplier, nil, false)
	rec := doGet(t, router, "/guarded", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/supplier", body.Error.Details["redirect"])
}

func TestAuthRequired_NoToken(t *testing.T) {
	jwtSvc := newTestJWT(t)
	router := surfaceTestRouter(jwtSvc, user.RoleTradie)

	rec := doGet(t, router, "/guarded", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsRefreshTokenType(t *testing.T) {
	jwtSvc := newTestJWT(t)
	router := surfaceTestRouter(jwtSvc, user.RoleTradie)

	refreshToken, _, err := jwtSvc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	rec := doGet(t, router, "/guarded", refreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHomeSurface(t *testing.T) {
	tests := []struct {
		role user.Role
		want string
	}{
		{user.RoleTradie, "/mobile"},
		{user.RoleSupplier, "/supplier"},
		{user.RoleProjectManager, "/pm"},
		{user.RoleAdmin, "/pm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HomeSurface(tt.role))
	}
}
