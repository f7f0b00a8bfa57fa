package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/company"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/domain/membership"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// PMHandler is the project manager surface: issuing and managing
// invitations, the tradie roster, and the company profile.
type PMHandler interface {
	IssueInvitation(w http.ResponseWriter, r *http.Request)
	ResendInvitation(w http.ResponseWriter, r *http.Request)
	CancelInvitation(w http.ResponseWriter, r *http.Request)
	ListInvitations(w http.ResponseWriter, r *http.Request)
	ListTradies(w http.ResponseWriter, r *http.Request)
	RevokeTradie(w http.ResponseWriter, r *http.Request)
	GetCompany(w http.ResponseWriter, r *http.Request)
}

type PMHandlerImpl struct {
	invitationService invitation.InvitationService
	membershipService membership.MembershipService
	companyService    company.CompanyService
	userRepo          user.UserRepository
}

func NewPMHandler(
	invitationService invitation.InvitationService,
	membershipService membership.MembershipService,
	companyService company.CompanyService,
	userRepo user.UserRepository,
) PMHandler {
	return &PMHandlerImpl{
		invitationService: invitationService,
		membershipService: membershipService,
		companyService:    companyService,
		userRepo:          userRepo,
	}
}

// IssueInvitation implements PMHandler.
func (h *PMHandlerImpl) IssueInvitation(w http.ResponseWriter, r *http.Request) {
	var issueReq invitation.IssueRequest

	if err := json.NewDecoder(r.Body).Decode(&issueReq); err != nil {
		slog.Error("IssueInvitation decode error", "error", err)
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format")
		return
	}

	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	issueReq.ProjectManagerID = pmID

	invitationResp, err := h.invitationService.Issue(r.Context(), issueReq)
	if err != nil {
		slog.Error("IssueInvitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Invitation issued", "invitation_id", invitationResp.ID)
	response.Created(w, "Invitation sent", invitationResp)
}

// ResendInvitation implements PMHandler.
func (h *PMHandlerImpl) ResendInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "id")

	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.invitationService.Resend(r.Context(), invitationID, pmID); err != nil {
		slog.Error("ResendInvitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation resent", nil)
}

// CancelInvitation implements PMHandler.
func (h *PMHandlerImpl) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "id")

	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.invitationService.Cancel(r.Context(), invitationID, pmID); err != nil {
		slog.Error("CancelInvitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation cancelled", nil)
}

// ListInvitations implements PMHandler.
func (h *PMHandlerImpl) ListInvitations(w http.ResponseWriter, r *http.Request) {
	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	invitations, err := h.invitationService.ListIssued(r.Context(), pmID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invitations)
}

// ListTradies implements PMHandler.
func (h *PMHandlerImpl) ListTradies(w http.ResponseWriter, r *http.Request) {
	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tradies, err := h.membershipService.ListCompanyTradies(r.Context(), pmID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tradies)
}

// RevokeTradie implements PMHandler.
func (h *PMHandlerImpl) RevokeTradie(w http.ResponseWriter, r *http.Request) {
	var revokeReq membership.RevokeRequest

	// Body is optional, only carries the reason.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&revokeReq); err != nil {
			slog.Error("RevokeTradie decode error", "error", err)
			response.BadRequest(w, "BAD_REQUEST", "Invalid request format")
			return
		}
	}

	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	revokeReq.TradieID = chi.URLParam(r, "id")
	revokeReq.ProjectManagerID = pmID

	if err := h.membershipService.Revoke(r.Context(), revokeReq); err != nil {
		slog.Error("RevokeTradie service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Tradie access revoked", "tradie_id", revokeReq.TradieID)
	response.SuccessWithMessage(w, "Tradie access revoked", nil)
}

// GetCompany implements PMHandler. Returns the PM's own company.
func (h *PMHandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	pmID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pm, err := h.userRepo.GetByID(r.Context(), pmID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if pm.CompanyID == nil {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	companyResp, err := h.companyService.GetByID(r.Context(), *pm.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResp)
}
