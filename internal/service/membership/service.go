package membership

import (
	"context"
	"fmt"

	"github.com/partflow/partflow-backend-go/internal/domain/membership"
	"github.com/partflow/partflow-backend-go/internal/domain/notification"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

type MembershipServiceImpl struct {
	db                  *database.DB
	userRepo            user.UserRepository
	notificationService notification.Service
}

func NewMembershipService(
	db *database.DB,
	userRepo user.UserRepository,
	notificationService notification.Service,
) membership.MembershipService {
	return &MembershipServiceImpl{
		db:                  db,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// Revoke implements membership.MembershipService. The company link is kept
// so the member resolves to limited access, not independent, and a re-invite
// against the same company remains traceable.
func (s *MembershipServiceImpl) Revoke(ctx context.Context, req membership.RevokeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	pm, err := s.userRepo.GetByID(ctx, req.ProjectManagerID)
	if err != nil {
		return fmt.Errorf("failed to get project manager: %w", err)
	}
	if pm.CompanyID == nil {
		return user.ErrCompanyIDRequired
	}

	member, err := s.userRepo.GetByID(ctx, req.TradieID)
	if err != nil {
		return err
	}
	if member.CompanyID == nil || *member.CompanyID != *pm.CompanyID {
		return user.ErrNotCompanyMember
	}

	// Conditioned on is_approved at the row level; a second revoke fails
	// with ErrNotApprovedMember instead of silently re-applying.
	if err := s.userRepo.RevokeApproval(ctx, req.TradieID); err != nil {
		return err
	}

	message := "Your company access has been removed"
	if req.Reason != nil && *req.Reason != "" {
		message = fmt.Sprintf("Your company access has been removed: %s", *req.Reason)
	}

	_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: member.ID,
		SenderID:    &pm.ID,
		Type:        notification.TypeAccessRemoved,
		Title:       "Access removed",
		Message:     message,
	})

	_ = s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: pm.ID,
		Type:        notification.TypeTradieRemoved,
		Title:       "Member removed",
		Message:     fmt.Sprintf("%s no longer has access to your company account", member.FullName),
	})

	return nil
}

// ListCompanyTradies implements membership.MembershipService.
func (s *MembershipServiceImpl) ListCompanyTradies(ctx context.Context, projectManagerID string) ([]user.CompanyTradieResponse, error) {
	pm, err := s.userRepo.GetByID(ctx, projectManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project manager: %w", err)
	}
	if pm.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}

	members, err := s.userRepo.ListApprovedByCompany(ctx, *pm.CompanyID)
	if err != nil {
		return nil, err
	}

	roster := make([]user.CompanyTradieResponse, 0, len(members))
	for _, m := range members {
		roster = append(roster, user.CompanyTradieResponse{
			ID:         m.ID,
			Email:      m.Email,
			FullName:   m.FullName,
			Phone:      m.Phone,
			IsApproved: m.IsApproved,
		})
	}

	return roster, nil
}
