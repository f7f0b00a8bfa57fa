package http

import (
	"net/http"

	"github.com/partflow/partflow-backend-go/internal/domain/company"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// SupplierHandler is the supplier surface. Catalog management is a stub
// until the catalog domain lands; the surface mainly exercises the guard.
type SupplierHandler interface {
	GetCompany(w http.ResponseWriter, r *http.Request)
	ListCompanies(w http.ResponseWriter, r *http.Request)
	Catalog(w http.ResponseWriter, r *http.Request)
}

type SupplierHandlerImpl struct {
	companyService company.CompanyService
	userRepo       user.UserRepository
}

func NewSupplierHandler(companyService company.CompanyService, userRepo user.UserRepository) SupplierHandler {
	return &SupplierHandlerImpl{
		companyService: companyService,
		userRepo:       userRepo,
	}
}

// GetCompany implements SupplierHandler. Returns the supplier's own company.
func (h *SupplierHandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	userData, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if userData.CompanyID == nil {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	companyResp, err := h.companyService.GetByID(r.Context(), *userData.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResp)
}

// ListCompanies implements SupplierHandler. Suppliers see the buyer
// companies so they can reason about price tiers.
func (h *SupplierHandlerImpl) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// Catalog implements SupplierHandler.
func (h *SupplierHandlerImpl) Catalog(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{"parts": []interface{}{}})
}
