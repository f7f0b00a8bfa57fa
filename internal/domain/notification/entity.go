package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeInvitationReceived  NotificationType = "invitation_received"
	TypeInvitationAccepted  NotificationType = "invitation_accepted"
	TypeInvitationRejected  NotificationType = "invitation_rejected"
	TypeInvitationCancelled NotificationType = "invitation_cancelled"
	TypeAccessRemoved       NotificationType = "access_removed"
	TypeTradieRemoved       NotificationType = "tradie_removed_confirmation"
	TypeOrderUpdate         NotificationType = "order_update"
	TypeGeneric             NotificationType = "generic"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeInvitationReceived,
		TypeInvitationAccepted,
		TypeInvitationRejected,
		TypeInvitationCancelled,
		TypeAccessRemoved,
		TypeTradieRemoved,
		TypeOrderUpdate,
		TypeGeneric,
	}
}

// Notification represents a notification entity. Rows are written by
// lifecycle events, mutated only by marking read, never deleted here.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	RelatedID   *string
	RelatedType *string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
