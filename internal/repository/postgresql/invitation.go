package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

type invitationRepositoryImpl struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository instance
func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

const invitationColumns = `id, project_manager_id, company_id, tradie_id, email, phone,
	personal_message, token, expires_at, status, response_date, created_at, updated_at`

func scanInvitation(row pgx.Row) (invitation.Invitation, error) {
	var inv invitation.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.ProjectManagerID,
		&inv.CompanyID,
		&inv.TradieID,
		&inv.Email,
		&inv.Phone,
		&inv.PersonalMessage,
		&inv.Token,
		&inv.ExpiresAt,
		&inv.Status,
		&inv.ResponseDate,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}

// Create implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO invitations (
			project_manager_id, company_id, tradie_id, email, phone,
			personal_message, token, expires_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, invitationColumns)

	created, err := scanInvitation(q.QueryRow(ctx, query,
		inv.ProjectManagerID, inv.CompanyID, inv.TradieID, inv.Email, inv.Phone,
		inv.PersonalMessage, inv.Token, inv.ExpiresAt, inv.Status,
	))
	if err != nil {
		// invitations_one_pending_per_email is a partial unique index on
		// (email) WHERE status = 'pending'. It backstops the service-level
		// existence check when two Issue calls race for the same email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return invitation.Invitation{}, invitation.ErrDuplicateActiveInvitation
			}
		}
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	return created, nil
}

// GetByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE token = $1`, invitationColumns)
	inv, err := scanInvitation(q.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.Invitation{}, invitation.ErrTokenNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation by token: %w", err)
	}

	return inv, nil
}

// GetByTokenWithDetails implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByTokenWithDetails(ctx context.Context, token string) (invitation.InvitationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			i.id, i.project_manager_id, i.company_id, i.tradie_id, i.email, i.phone,
			i.personal_message, i.token, i.expires_at, i.status, i.response_date,
			i.created_at, i.updated_at,
			c.name AS company_name,
			pm.full_name AS inviter_name
		FROM invitations i
		JOIN companies c ON c.id = i.company_id
		JOIN users pm ON pm.id = i.project_manager_id
		WHERE i.token = $1
	`

	var inv invitation.InvitationWithDetails
	err := q.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.ProjectManagerID, &inv.CompanyID, &inv.TradieID, &inv.Email, &inv.Phone,
		&inv.PersonalMessage, &inv.Token, &inv.ExpiresAt, &inv.Status, &inv.ResponseDate,
		&inv.CreatedAt, &inv.UpdatedAt,
		&inv.CompanyName, &inv.InviterName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inv, invitation.ErrTokenNotFound
		}
		return inv, fmt.Errorf("failed to get invitation by token: %w", err)
	}

	return inv, nil
}

// GetByID implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByID(ctx context.Context, id string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE id = $1`, invitationColumns)
	inv, err := scanInvitation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation by id: %w", err)
	}

	return inv, nil
}

// ExistsActiveByEmail implements invitation.InvitationRepository. Live means
// pending and unexpired; the expiry boundary matches Invitation.IsExpired.
func (r *invitationRepositoryImpl) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE email = $1 AND status = 'pending' AND expires_at > NOW()
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active invitation: %w", err)
	}

	return exists, nil
}

// ListActiveByEmail implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ListActiveByEmail(ctx context.Context, email string) ([]invitation.InvitationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			i.id, i.project_manager_id, i.company_id, i.tradie_id, i.email, i.phone,
			i.personal_message, i.token, i.expires_at, i.status, i.response_date,
			i.created_at, i.updated_at,
			c.name AS company_name,
			pm.full_name AS inviter_name
		FROM invitations i
		JOIN companies c ON c.id = i.company_id
		JOIN users pm ON pm.id = i.project_manager_id
		WHERE i.email = $1 AND i.status = 'pending' AND i.expires_at > NOW()
		ORDER BY i.created_at DESC
	`

	rows, err := q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list active invitations: %w", err)
	}
	defer rows.Close()

	var invitations []invitation.InvitationWithDetails
	for rows.Next() {
		var inv invitation.InvitationWithDetails
		err := rows.Scan(
			&inv.ID, &inv.ProjectManagerID, &inv.CompanyID, &inv.TradieID, &inv.Email, &inv.Phone,
			&inv.PersonalMessage, &inv.Token, &inv.ExpiresAt, &inv.Status, &inv.ResponseDate,
			&inv.CreatedAt, &inv.UpdatedAt,
			&inv.CompanyName, &inv.InviterName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// ListByProjectManager implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ListByProjectManager(ctx context.Context, projectManagerID string) ([]invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE project_manager_id = $1
		ORDER BY created_at DESC
	`, invitationColumns)

	rows, err := q.Query(ctx, query, projectManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []invitation.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// markStatus performs the status-conditioned transition all mutations share.
// The WHERE status = 'pending' clause is the compare-and-swap: of two racing
// transitions exactly one matches the row, the other sees zero rows and
// resolves to ErrInvalidState.
func (r *invitationRepositoryImpl) markStatus(ctx context.Context, id string, to invitation.Status, stampResponse bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING id
	`
	if stampResponse {
		query = `
			UPDATE invitations
			SET status = $1, response_date = NOW(), updated_at = NOW()
			WHERE id = $2 AND status = 'pending'
			RETURNING id
		`
	}

	var updatedID string
	err := q.QueryRow(ctx, query, to, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing row from a lost race.
			var exists bool
			if exErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invitations WHERE id = $1)`, id).Scan(&exists); exErr != nil {
				return fmt.Errorf("failed to check invitation existence: %w", exErr)
			}
			if !exists {
				return invitation.ErrInvitationNotFound
			}
			return invitation.ErrInvalidState
		}
		return fmt.Errorf("failed to transition invitation to %s: %w", to, err)
	}

	return nil
}

// MarkAccepted implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, invitation.StatusAccepted, true)
}

// MarkRejected implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkRejected(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, invitation.StatusRejected, true)
}

// MarkCancelled implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkCancelled(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, invitation.StatusCancelled, false)
}

// UpdateToken implements invitation.InvitationRepository. Conditioned on
// pending like the status transitions; resending a terminal row is invalid.
func (r *invitationRepositoryImpl) UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET token = $1, expires_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, newToken, expiresAt, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			var exists bool
			if exErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invitations WHERE id = $1)`, id).Scan(&exists); exErr != nil {
				return fmt.Errorf("failed to check invitation existence: %w", exErr)
			}
			if !exists {
				return invitation.ErrInvitationNotFound
			}
			return invitation.ErrInvalidState
		}
		return fmt.Errorf("failed to update invitation token: %w", err)
	}

	return nil
}
