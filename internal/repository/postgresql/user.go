package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, company_id, email, phone, full_name, password_hash, role,
	is_approved, email_verified, email_verification_token, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Email,
		&u.Phone,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.IsApproved,
		&u.EmailVerified,
		&u.EmailVerificationToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO users (company_id, email, phone, full_name, password_hash, role,
			is_approved, email_verified, email_verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, userColumns)

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.CompanyID, newUser.Email, newUser.Phone, newUser.FullName,
		newUser.PasswordHash, newUser.Role, newUser.IsApproved,
		newUser.EmailVerified, newUser.EmailVerificationToken,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, passwordHash, userID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// VerifyEmail implements user.UserRepository.
func (r *userRepositoryImpl) VerifyEmail(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email_verified = TRUE, email_verification_token = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, userID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

// GetByEmailVerificationToken implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmailVerificationToken(ctx context.Context, token string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email_verification_token = $1`, userColumns)
	u, err := scanUser(q.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrVerificationTokenNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by verification token: %w", err)
	}

	return u, nil
}

// GrantMembership implements user.UserRepository. Both fields change in one
// statement so the approval invariant can never be observed broken.
func (r *userRepositoryImpl) GrantMembership(ctx context.Context, userID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET company_id = $1, is_approved = TRUE, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, companyID, userID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to grant membership: %w", err)
	}

	return nil
}

// RevokeApproval implements user.UserRepository. company_id is retained.
func (r *userRepositoryImpl) RevokeApproval(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_approved = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_approved = TRUE
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, userID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrNotApprovedMember
		}
		return fmt.Errorf("failed to revoke approval: %w", err)
	}

	return nil
}

// ListApprovedByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListApprovedByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE company_id = $1 AND role = 'tradie'
		ORDER BY full_name
	`, userColumns)

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company tradies: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}
