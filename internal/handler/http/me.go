package http

import (
	"net/http"

	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

type MeHandler interface {
	Profile(w http.ResponseWriter, r *http.Request)
	Permissions(w http.ResponseWriter, r *http.Request)
}

type MeHandlerImpl struct {
	authService auth.AuthService
	userRepo    user.UserRepository
}

func NewMeHandler(authService auth.AuthService, userRepo user.UserRepository) MeHandler {
	return &MeHandlerImpl{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Profile implements MeHandler.
func (m *MeHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := m.authService.Me(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Permissions implements MeHandler. Access is resolved from the live user
// row, not the token claims, so revokes land mid-session.
func (m *MeHandlerImpl) Permissions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	userData, err := m.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.NewPermissionsResponse(userData))
}
