package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/services"
)

// GetNotifications lists the caller's notifications, newest first,
// along with the unread count.
func GetNotifications(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var notifications []models.Notification
	if err := config.DB.Preload("RelatedUser").
		Where("user_id = ?", userID).
		Order("create_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	unread, _ := services.UnreadCount(config.DB, userID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkNotificationRead flips one owned notification to read
func MarkNotificationRead(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	notifID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	res := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllNotificationsRead marks every unread notification owned by the
// caller. Idempotent: the second call in a row updates zero rows.
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	updated, err := services.MarkAllRead(config.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked read",
		"updated": updated,
	})
}

// GetGlobalNotifications returns the currently visible site-wide banners
func GetGlobalNotifications(c *gin.Context) {
	rows, err := services.VisibleGlobalNotifications(config.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list global notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"global_notifications": rows})
}

// CreateGlobalNotification publishes a site-wide banner (admin only;
// route is guarded by RequireAdmin).
func CreateGlobalNotification(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var req models.GlobalNotificationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g := models.GlobalNotification{
		Title:      req.Title,
		Message:    req.Message,
		Level:      models.GlobalLevelInfo,
		ShowOnSite: true,
		IsActive:   true,
		CreateAt:   time.Now(),
		ExpiresAt:  req.ExpiresAt,
	}
	if req.Level != "" {
		g.Level = req.Level
	}
	if req.ShowOnSite != nil {
		g.ShowOnSite = *req.ShowOnSite
	}
	if req.SendEmail != nil {
		g.SendEmail = *req.SendEmail
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&g).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create global notification"})
		return
	}

	audit(c, &userID, fmt.Sprintf("global_notification_created id=%d", g.GlobalNotificationID))
	services.BroadcastGlobalNotification(config.DB, &g)

	c.JSON(http.StatusCreated, gin.H{"global_notification": g})
}

// UpdateGlobalNotification toggles or edits a banner (admin only)
func UpdateGlobalNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	var g models.GlobalNotification
	if err := config.DB.Where("global_notification_id = ?", id).First(&g).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Global notification not found"})
		return
	}

	var req models.GlobalNotificationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":   req.Title,
		"message": req.Message,
	}
	if req.Level != "" {
		updates["level"] = req.Level
	}
	if req.ShowOnSite != nil {
		updates["show_on_site"] = *req.ShowOnSite
	}
	if req.SendEmail != nil {
		updates["send_email"] = *req.SendEmail
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = req.ExpiresAt
	}

	if err := config.DB.Model(&g).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update global notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"global_notification": g})
}
