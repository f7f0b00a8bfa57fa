package middleware

import (
	"net/http"
	"strings"

	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// Sections of the tradie surface open to every tradie, approved or not.
// Everything else on the surface needs an approved company membership.
var openSections = []string{
	"/home",
	"/account",
	"/parts",
	"/search",
	"/notifications",
	"/pending-approval",
}

func isOpenSection(relPath string) bool {
	if relPath == "" || relPath == "/" {
		return true
	}
	for _, section := range openSections {
		if relPath == section || strings.HasPrefix(relPath, section+"/") {
			return true
		}
	}
	return false
}

// TradieApprovalGate guards the tradie surface. The approval check reads the
// live user row, not the token claim, so a revoke in another session locks
// the surface down without waiting for the access token to expire.
func TradieApprovalGate(userRepo user.UserRepository, mountPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			relPath := strings.TrimPrefix(r.URL.Path, mountPrefix)

			if isOpenSection(relPath) {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := UserIDFromContext(r)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			userData, err := userRepo.GetByID(r.Context(), userID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !userData.HasApprovedMembership() {
				response.ForbiddenWithDetails(w, "APPROVAL_REQUIRED", "Approved company membership required", map[string]string{
					"redirect": mountPrefix + "/pending-approval",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
