package company

import "context"

// CompanyService defines the company business logic interface
type CompanyService interface {
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	List(ctx context.Context) ([]CompanyResponse, error)
	Create(ctx context.Context, req CreateRequest) (CompanyResponse, error)
}
