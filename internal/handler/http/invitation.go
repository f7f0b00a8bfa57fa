package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// InvitationHandler covers the invitee side of the invitation lifecycle.
// The issuer side lives on the project manager surface.
type InvitationHandler interface {
	GetByToken(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type InvitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &InvitationHandlerImpl{invitationService: invitationService}
}

// GetByToken implements InvitationHandler. Public: the invitee follows the
// emailed link before they have an account.
func (h *InvitationHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	detail, err := h.invitationService.GetByToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Accept implements InvitationHandler.
func (h *InvitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	email, err := middleware.EmailFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	acceptResp, err := h.invitationService.Accept(r.Context(), token, userID, email)
	if err != nil {
		slog.Error("Accept invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Invitation accepted", "user_id", userID)
	response.SuccessWithMessage(w, "Invitation accepted", acceptResp)
}

// Reject implements InvitationHandler.
func (h *InvitationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	email, err := middleware.EmailFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.invitationService.Reject(r.Context(), token, userID, email); err != nil {
		slog.Error("Reject invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation rejected", nil)
}

// ListMy implements InvitationHandler.
func (h *InvitationHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.EmailFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	invitations, err := h.invitationService.ListMyInvitations(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invitations)
}
