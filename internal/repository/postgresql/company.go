package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/company"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, price_tier, contact_email, contact_phone, address, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.PriceTier,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)
	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id: %w", err)
	}

	return c, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO companies (name, price_tier, contact_email, contact_phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, companyColumns)

	created, err := scanCompany(q.QueryRow(ctx, query,
		c.Name, c.PriceTier, c.ContactEmail, c.ContactPhone, c.Address,
	))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return created, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM companies ORDER BY name`, companyColumns)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

// ExistsByName implements company.CompanyRepository.
func (r *companyRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}

	return exists, nil
}
