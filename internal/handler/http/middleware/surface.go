package middleware

import (
	"net/http"

	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// HomeSurface returns the surface a role lands on after login. Guards send
// it back on a mismatch so clients can redirect instead of dead-ending.
func HomeSurface(role user.Role) string {
	switch role {
	case user.RoleSupplier:
		return "/supplier"
	case user.RoleProjectManager, user.RoleAdmin:
		return "/pm"
	default:
		return "/mobile"
	}
}

// RequireSurface admits only the listed roles. Any other authenticated role
// gets a 403 with its own home surface as the redirect hint.
func RequireSurface(allowed ...user.Role) func(http.Handler) http.Handler {
	allowedSet := make(map[user.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := RoleFromContext(r)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if _, ok := allowedSet[role]; !ok {
				response.ForbiddenWithDetails(w, "ROLE_MISMATCH", "Role not allowed on this surface", map[string]string{
					"redirect": HomeSurface(role),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
