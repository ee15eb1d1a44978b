package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/ws"
)

// NotifyUser creates exactly one notification row for the recipient and
// pushes it to their private topic. Synchronous with the triggering
// action; a failure here is logged and never rolls the trigger back.
func NotifyUser(db *gorm.DB, userID uint, typ, title, message string, link *string, relatedUserID *uint) {
	n := models.Notification{
		UserID:        userID,
		Type:          typ,
		Title:         title,
		Message:       message,
		Link:          link,
		RelatedUserID: relatedUserID,
		CreateAt:      time.Now(),
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
		return
	}

	fields := map[string]interface{}{
		"notification": gormNotificationEnvelope(&n),
	}
	ws.PublishJSON(ws.UserTopic(userID), "notification", fields)
}

func gormNotificationEnvelope(n *models.Notification) map[string]interface{} {
	envelope := map[string]interface{}{
		"notification_id":   n.NotificationID,
		"title":             n.Title,
		"message":           n.Message,
		"notification_type": n.Type,
		"is_read":           n.IsRead,
		"created_at":        n.CreateAt.UTC().Format(time.RFC3339),
	}
	if n.Link != nil {
		envelope["link"] = *n.Link
	}
	return envelope
}

// MarkAllRead flips every unread notification owned by userID. Scoped
// to is_read = 0 so a second call touches no rows.
func MarkAllRead(db *gorm.DB, userID uint) (int64, error) {
	res := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// UnreadCount returns the number of unread notifications for userID.
func UnreadCount(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// VisibleGlobalNotifications returns the site-wide banners currently
// visible under the canonical predicate.
func VisibleGlobalNotifications(db *gorm.DB, now time.Time) ([]models.GlobalNotification, error) {
	var rows []models.GlobalNotification
	err := db.Where("is_active = ? AND show_on_site = ? AND (expires_at IS NULL OR expires_at > ?)",
		true, true, now).
		Order("create_at DESC").
		Find(&rows).Error
	return rows, err
}

// BroadcastGlobalNotification pushes a freshly created banner to every
// connected client and, when requested, fans out a best-effort email to
// accounts that opted into email notifications.
func BroadcastGlobalNotification(db *gorm.DB, g *models.GlobalNotification) {
	if !g.IsVisible(time.Now()) {
		return
	}

	ws.PublishJSON(ws.TopicGlobal, "global_notification", map[string]interface{}{
		"notification": map[string]interface{}{
			"global_notification_id": g.GlobalNotificationID,
			"title":                  g.Title,
			"message":                g.Message,
			"level":                  g.Level,
			"created_at":             g.CreateAt.UTC().Format(time.RFC3339),
		},
	})

	if !g.SendEmail {
		return
	}

	var recipients []string
	if err := db.Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.user_id").
		Where("profiles.email_notifications = ? AND users.delete_at IS NULL", true).
		Pluck("users.email", &recipients).Error; err != nil {
		log.Printf("Failed to collect global notification recipients: %v", err)
		return
	}
	if err := config.SendMail(recipients, g.Title, "<p>"+g.Message+"</p>"); err != nil {
		log.Printf("Failed to email global notification %d: %v", g.GlobalNotificationID, err)
	}
}
