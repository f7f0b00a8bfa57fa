package company

import (
	"context"
	"fmt"

	"github.com/partflow/partflow-backend-go/internal/domain/company"
)

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{companyRepo: companyRepo}
}

// GetByID implements company.CompanyService.
func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(c), nil
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = company.NewCompanyResponse(c)
	}
	return responses, nil
}

// Create implements company.CompanyService.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	exists, err := s.companyRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to check company name: %w", err)
	}
	if exists {
		return company.CompanyResponse{}, company.ErrNameExists
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name:         req.Name,
		PriceTier:    company.PriceTier(req.PriceTier),
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	return company.NewCompanyResponse(created), nil
}
