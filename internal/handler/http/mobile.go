package http

import (
	"net/http"

	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// MobileHandler is the tradie surface. The sections here exist mainly to be
// guarded: open sections serve every tradie, the rest only approved members.
// Catalog, cart and order data are placeholders until those domains land.
type MobileHandler interface {
	Home(w http.ResponseWriter, r *http.Request)
	Account(w http.ResponseWriter, r *http.Request)
	Parts(w http.ResponseWriter, r *http.Request)
	PopularParts(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	PendingApproval(w http.ResponseWriter, r *http.Request)

	Cart(w http.ResponseWriter, r *http.Request)
	Orders(w http.ResponseWriter, r *http.Request)
	Jobs(w http.ResponseWriter, r *http.Request)
	Favorites(w http.ResponseWriter, r *http.Request)
}

type MobileHandlerImpl struct {
	authService       auth.AuthService
	invitationService invitation.InvitationService
	userRepo          user.UserRepository
}

func NewMobileHandler(authService auth.AuthService, invitationService invitation.InvitationService, userRepo user.UserRepository) MobileHandler {
	return &MobileHandlerImpl{
		authService:       authService,
		invitationService: invitationService,
		userRepo:          userRepo,
	}
}

func (h *MobileHandlerImpl) currentUser(r *http.Request) (user.User, error) {
	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		return user.User{}, err
	}
	return h.userRepo.GetByID(r.Context(), userID)
}

// Home implements MobileHandler. Open to every tradie; the payload carries
// the resolved access level so the client can shape its navigation.
func (h *MobileHandlerImpl) Home(w http.ResponseWriter, r *http.Request) {
	userData, err := h.currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.NewPermissionsResponse(userData))
}

// Account implements MobileHandler.
func (h *MobileHandlerImpl) Account(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Parts implements MobileHandler. Browsing is open; pricing is withheld
// unless the resolved capabilities allow it.
func (h *MobileHandlerImpl) Parts(w http.ResponseWriter, r *http.Request) {
	userData, err := h.currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	_, caps := user.Resolve(&userData)
	response.Success(w, map[string]interface{}{
		"parts":           []interface{}{},
		"pricing_visible": caps.CanViewPricing,
	})
}

// PopularParts implements MobileHandler.
func (h *MobileHandlerImpl) PopularParts(w http.ResponseWriter, r *http.Request) {
	userData, err := h.currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	_, caps := user.Resolve(&userData)
	response.Success(w, map[string]interface{}{
		"parts":           []interface{}{},
		"pricing_visible": caps.CanViewPricing,
	})
}

// Search implements MobileHandler. Part search is open; job-number search
// needs the approved capability.
func (h *MobileHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	userData, err := h.currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	_, caps := user.Resolve(&userData)
	if r.URL.Query().Get("job_number") != "" && !caps.CanSearchByJobNumber {
		response.HandleError(w, user.ErrApprovalRequired)
		return
	}

	response.Success(w, map[string]interface{}{
		"query":   r.URL.Query().Get("q"),
		"results": []interface{}{},
	})
}

// PendingApproval implements MobileHandler. Shows the tradie where they
// stand: live invitations plus the current approval state.
func (h *MobileHandlerImpl) PendingApproval(w http.ResponseWriter, r *http.Request) {
	userData, err := h.currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	invitations, err := h.invitationService.ListMyInvitations(r.Context(), userData.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	level, _ := user.Resolve(&userData)
	response.Success(w, map[string]interface{}{
		"access_level": level,
		"is_approved":  userData.IsApproved,
		"invitations":  invitations,
	})
}

// Cart implements MobileHandler. Approved members only, enforced upstream.
func (h *MobileHandlerImpl) Cart(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{"items": []interface{}{}})
}

// Orders implements MobileHandler.
func (h *MobileHandlerImpl) Orders(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{"orders": []interface{}{}})
}

// Jobs implements MobileHandler.
func (h *MobileHandlerImpl) Jobs(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{"jobs": []interface{}{}})
}

// Favorites implements MobileHandler.
func (h *MobileHandlerImpl) Favorites(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{"favorites": []interface{}{}})
}
