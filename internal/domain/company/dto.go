package company

import "github.com/partflow/partflow-backend-go/internal/pkg/validator"

// CreateRequest - POST /admin/companies
type CreateRequest struct {
	Name         string  `json:"name"`
	PriceTier    string  `json:"price_tier"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !PriceTier(r.PriceTier).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "price_tier",
			Message: "price_tier must be one of T1, T2, T3",
		})
	}

	if r.ContactEmail != nil && !validator.IsValidEmail(*r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "contact_email format is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CompanyResponse is the API shape of a company
type CompanyResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PriceTier    string  `json:"price_tier"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		PriceTier:    string(c.PriceTier),
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
	}
}
