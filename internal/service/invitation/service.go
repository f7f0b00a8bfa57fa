package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/partflow/partflow-backend-go/internal/config"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/domain/notification"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
	"github.com/partflow/partflow-backend-go/internal/pkg/email"
	"github.com/partflow/partflow-backend-go/internal/repository/postgresql"
)

type InvitationServiceImpl struct {
	db                  *database.DB
	invitationRepo      invitation.InvitationRepository
	userRepo            user.UserRepository
	notificationService notification.Service
	emailService        email.EmailService
	cfg                 config.InvitationConfig
}

func NewInvitationService(
	db *database.DB,
	invitationRepo invitation.InvitationRepository,
	userRepo user.UserRepository,
	notificationService notification.Service,
	emailService email.EmailService,
	cfg config.InvitationConfig,
) invitation.InvitationService {
	return &InvitationServiceImpl{
		db:                  db,
		invitationRepo:      invitationRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailService:        emailService,
		cfg:                 cfg,
	}
}

// Issue implements invitation.InvitationService.
func (s *InvitationServiceImpl) Issue(ctx context.Context, req invitation.IssueRequest) (invitation.InvitationResponse, error) {
	if err := req.Validate(); err != nil {
		return invitation.InvitationResponse{}, err
	}

	pm, err := s.userRepo.GetByID(ctx, req.ProjectManagerID)
	if err != nil {
		return invitation.InvitationResponse{}, fmt.Errorf("failed to get project manager: %w", err)
	}
	if pm.CompanyID == nil {
		return invitation.InvitationResponse{}, user.ErrCompanyIDRequired
	}

	// One live company offer per email, platform-wide
	hasActive, err := s.invitationRepo.ExistsActiveByEmail(ctx, req.Email)
	if err != nil {
		return invitation.InvitationResponse{}, fmt.Errorf("failed to check active invitation: %w", err)
	}
	if hasActive {
		return invitation.InvitationResponse{}, invitation.ErrDuplicateActiveInvitation
	}

	// The invitee may not have an account yet; link it when it exists
	var tradieID *string
	invitee, err := s.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if invitee.Role != user.RoleTradie {
			return invitation.InvitationResponse{}, invitation.ErrInviteeNotTradie
		}
		if invitee.HasApprovedMembership() {
			return invitation.InvitationResponse{}, invitation.ErrAlreadyMember
		}
		tradieID = &invitee.ID
	case errors.Is(err, user.ErrUserNotFound):
		// Fine; the invitation is resolved by email on registration
	default:
		return invitation.InvitationResponse{}, fmt.Errorf("failed to look up invitee: %w", err)
	}

	now := time.Now()
	newInv := invitation.Invitation{
		ProjectManagerID: req.ProjectManagerID,
		CompanyID:        *pm.CompanyID,
		TradieID:         tradieID,
		Email:            req.Email,
		Phone:            req.Phone,
		PersonalMessage:  req.PersonalMessage,
		Token:            uuid.NewString(),
		ExpiresAt:        now.Add(s.cfg.TokenTTL),
		Status:           invitation.StatusPending,
	}

	created, err := s.invitationRepo.Create(ctx, newInv)
	if err != nil {
		return invitation.InvitationResponse{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.notifyInvitee(ctx, created, pm)

	return invitation.NewInvitationResponse(created, now), nil
}

// notifyInvitee sends the invitation email and, when an account exists, an
// in-app notification. Both are best-effort: a notification failure never
// rolls back an issued invitation.
func (s *InvitationServiceImpl) notifyInvitee(ctx context.Context, inv invitation.Invitation, pm user.User) {
	link := fmt.Sprintf("%s/%s", s.cfg.LinkBase, inv.Token)
	companyName := s.companyNameFor(ctx, inv.CompanyID)

	// Failures are logged inside the email service; the invitation stands
	_ = s.emailService.SendInvitation(
		inv.Email, pm.FullName, companyName,
		inv.PersonalMessage, link, inv.ExpiresAt.Format(time.RFC1123),
	)

	if inv.TradieID != nil {
		_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: *inv.TradieID,
			SenderID:    &inv.ProjectManagerID,
			Type:        notification.TypeInvitationReceived,
			Title:       "Company invitation",
			Message:     fmt.Sprintf("%s invited you to join %s", pm.FullName, companyName),
			RelatedID:   &inv.ID,
			RelatedType: strPtr("invitation"),
		})
	}
}

// Resend implements invitation.InvitationService.
func (s *InvitationServiceImpl) Resend(ctx context.Context, invitationID, projectManagerID string) error {
	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.ProjectManagerID != projectManagerID {
		return invitation.ErrNotIssuer
	}
	if !inv.CanBeResent() {
		return invitation.ErrInvalidState
	}

	newToken := uuid.NewString()
	newExpiry := time.Now().Add(s.cfg.TokenTTL)

	// Conditioned on pending at the row level too; a concurrent accept wins
	if err := s.invitationRepo.UpdateToken(ctx, invitationID, newToken, newExpiry); err != nil {
		return err
	}

	pm, err := s.userRepo.GetByID(ctx, projectManagerID)
	if err != nil {
		return fmt.Errorf("failed to get project manager: %w", err)
	}

	link := fmt.Sprintf("%s/%s", s.cfg.LinkBase, newToken)
	_ = s.emailService.SendInvitation(
		inv.Email, pm.FullName, s.companyNameFor(ctx, inv.CompanyID),
		inv.PersonalMessage, link, newExpiry.Format(time.RFC1123),
	)

	return nil
}

// Cancel implements invitation.InvitationService.
func (s *InvitationServiceImpl) Cancel(ctx context.Context, invitationID, projectManagerID string) error {
	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.ProjectManagerID != projectManagerID {
		return invitation.ErrNotIssuer
	}

	if err := s.invitationRepo.MarkCancelled(ctx, invitationID); err != nil {
		return err
	}

	if inv.TradieID != nil {
		_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: *inv.TradieID,
			SenderID:    &projectManagerID,
			Type:        notification.TypeInvitationCancelled,
			Title:       "Invitation withdrawn",
			Message:     fmt.Sprintf("The invitation to join %s was withdrawn", s.companyNameFor(ctx, inv.CompanyID)),
			RelatedID:   &inv.ID,
			RelatedType: strPtr("invitation"),
		})
	}

	return nil
}

// Accept implements invitation.InvitationService. The status transition and
// the membership grant commit or roll back together.
func (s *InvitationServiceImpl) Accept(ctx context.Context, token, userID, userEmail string) (invitation.AcceptResponse, error) {
	inv, err := s.invitationRepo.GetByTokenWithDetails(ctx, token)
	if err != nil {
		return invitation.AcceptResponse{}, err
	}

	if inv.Email != userEmail {
		return invitation.AcceptResponse{}, invitation.ErrEmailMismatch
	}

	now := time.Now()
	if inv.IsExpired(now) {
		return invitation.AcceptResponse{}, invitation.ErrTokenExpired
	}
	if inv.Status != invitation.StatusPending {
		return invitation.AcceptResponse{}, invitation.ErrInvalidState
	}

	caller, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return invitation.AcceptResponse{}, err
	}
	if caller.Role != user.RoleTradie {
		return invitation.AcceptResponse{}, invitation.ErrInviteeNotTradie
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// CAS on status inside the transaction; a concurrent accept or
		// cancel that got there first surfaces as ErrInvalidState here.
		if err := s.invitationRepo.MarkAccepted(txCtx, inv.ID); err != nil {
			return err
		}
		if err := s.userRepo.GrantMembership(txCtx, userID, inv.CompanyID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return invitation.AcceptResponse{}, err
	}

	_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: inv.ProjectManagerID,
		SenderID:    &userID,
		Type:        notification.TypeInvitationAccepted,
		Title:       "Invitation accepted",
		Message:     fmt.Sprintf("%s accepted your invitation to %s", caller.FullName, inv.CompanyName),
		RelatedID:   &inv.ID,
		RelatedType: strPtr("invitation"),
	})

	return invitation.AcceptResponse{
		Message:     "Invitation accepted successfully",
		CompanyID:   inv.CompanyID,
		CompanyName: inv.CompanyName,
	}, nil
}

// Reject implements invitation.InvitationService. Declining preserves the
// caller's independent status; only the invitation row changes.
func (s *InvitationServiceImpl) Reject(ctx context.Context, token, userID, userEmail string) error {
	inv, err := s.invitationRepo.GetByTokenWithDetails(ctx, token)
	if err != nil {
		return err
	}

	if inv.Email != userEmail {
		return invitation.ErrEmailMismatch
	}

	now := time.Now()
	if inv.IsExpired(now) {
		return invitation.ErrTokenExpired
	}
	if inv.Status != invitation.StatusPending {
		return invitation.ErrInvalidState
	}

	if err := s.invitationRepo.MarkRejected(ctx, inv.ID); err != nil {
		return err
	}

	caller, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get caller: %w", err)
	}

	_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: inv.ProjectManagerID,
		SenderID:    &userID,
		Type:        notification.TypeInvitationRejected,
		Title:       "Invitation declined",
		Message:     fmt.Sprintf("%s declined your invitation to %s", caller.FullName, inv.CompanyName),
		RelatedID:   &inv.ID,
		RelatedType: strPtr("invitation"),
	})

	return nil
}

// GetByToken implements invitation.InvitationService.
func (s *InvitationServiceImpl) GetByToken(ctx context.Context, token string) (invitation.DetailResponse, error) {
	inv, err := s.invitationRepo.GetByTokenWithDetails(ctx, token)
	if err != nil {
		return invitation.DetailResponse{}, err
	}

	now := time.Now()
	return invitation.DetailResponse{
		Token:           inv.Token,
		Email:           inv.Email,
		CompanyName:     inv.CompanyName,
		InviterName:     inv.InviterName,
		PersonalMessage: inv.PersonalMessage,
		Status:          inv.Status,
		IsExpired:       inv.IsExpired(now),
		ExpiresAt:       inv.ExpiresAt,
	}, nil
}

// ListMyInvitations implements invitation.InvitationService.
func (s *InvitationServiceImpl) ListMyInvitations(ctx context.Context, email string) ([]invitation.MyInvitationResponse, error) {
	invs, err := s.invitationRepo.ListActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	responses := make([]invitation.MyInvitationResponse, 0, len(invs))
	for _, inv := range invs {
		responses = append(responses, invitation.MyInvitationResponse{
			Token:           inv.Token,
			CompanyName:     inv.CompanyName,
			InviterName:     inv.InviterName,
			PersonalMessage: inv.PersonalMessage,
			ExpiresAt:       inv.ExpiresAt,
			CreatedAt:       inv.CreatedAt,
		})
	}

	return responses, nil
}

// ListIssued implements invitation.InvitationService.
func (s *InvitationServiceImpl) ListIssued(ctx context.Context, projectManagerID string) ([]invitation.InvitationResponse, error) {
	invs, err := s.invitationRepo.ListByProjectManager(ctx, projectManagerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]invitation.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		responses = append(responses, invitation.NewInvitationResponse(inv, now))
	}

	return responses, nil
}

func (s *InvitationServiceImpl) companyNameFor(ctx context.Context, companyID string) string {
	// Display-only lookup; an empty name is acceptable on failure
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM companies WHERE id = $1`, companyID).Scan(&name)
	if err != nil {
		return ""
	}
	return name
}

func strPtr(s string) *string { return &s }
