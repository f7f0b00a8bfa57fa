package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	Create(ctx context.Context, c Company) (Company, error)
	List(ctx context.Context) ([]Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
