package models

import "time"

// Notification types
const (
	NotificationJobApplication = "job_application"
	NotificationJobPost        = "job_post"
	NotificationMessage        = "message"
	NotificationInterview      = "interview"
	NotificationProfileView    = "profile_view"
	NotificationSystem         = "system"
)

// Notification rows are created by system events only; users can only
// flip is_read on their own rows.
type Notification struct {
	NotificationID uint      `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID         uint      `gorm:"column:user_id" json:"user_id"`
	Type           string    `gorm:"column:type;default:system" json:"type"`
	Title          string    `gorm:"column:title" json:"title"`
	Message        string    `gorm:"column:message" json:"message"`
	IsRead         bool      `gorm:"column:is_read;default:false" json:"is_read"`
	Link           *string   `gorm:"column:link" json:"link,omitempty"`
	RelatedUserID  *uint     `gorm:"column:related_user_id" json:"related_user_id,omitempty"`
	CreateAt       time.Time `gorm:"column:create_at" json:"created_at"`

	RelatedUser *User `gorm:"foreignKey:RelatedUserID" json:"related_user,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

// Global notification levels
const (
	GlobalLevelInfo    = "info"
	GlobalLevelWarning = "warning"
	GlobalLevelDanger  = "danger"
)

// GlobalNotification is a site-wide banner with no owner.
type GlobalNotification struct {
	GlobalNotificationID uint       `gorm:"primaryKey;column:global_notification_id" json:"global_notification_id"`
	Title                string     `gorm:"column:title" json:"title"`
	Message              string     `gorm:"column:message" json:"message"`
	Level                string     `gorm:"column:level;default:info" json:"level"`
	ShowOnSite           bool       `gorm:"column:show_on_site;default:true" json:"show_on_site"`
	SendEmail            bool       `gorm:"column:send_email;default:false" json:"send_email"`
	IsActive             bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt             time.Time  `gorm:"column:create_at" json:"create_at"`
	ExpiresAt            *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
}

func (GlobalNotification) TableName() string { return "global_notifications" }

// IsVisible is the single canonical visibility predicate: active, shown
// on site, and either no expiry or an expiry in the future.
func (g *GlobalNotification) IsVisible(now time.Time) bool {
	if !g.IsActive || !g.ShowOnSite {
		return false
	}
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

// ===== Request DTOs =====

type GlobalNotificationCreateRequest struct {
	Title      string     `json:"title" binding:"required"`
	Message    string     `json:"message" binding:"required"`
	Level      string     `json:"level" binding:"omitempty,oneof=info warning danger"`
	ShowOnSite *bool      `json:"show_on_site"`
	SendEmail  *bool      `json:"send_email"`
	IsActive   *bool      `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
}
