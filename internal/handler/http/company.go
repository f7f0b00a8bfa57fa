package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/company"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// CompanyHandler is the admin view over companies.
type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// List implements CompanyHandler.
func (h *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// Create implements CompanyHandler.
func (h *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format")
		return
	}

	companyResp, err := h.companyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", companyResp)
}

// GetByID implements CompanyHandler.
func (h *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	companyResp, err := h.companyService.GetByID(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResp)
}
