package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"job-board-api/config"
	"job-board-api/models"
)

func getCurrentUserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return uint(t), true
		case int64:
			return uint(t), true
		case float64:
			return uint(t), true
		case uint:
			return t, true
		}
	}
	return 0, false
}

func getCurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// audit appends one row to the audit log. Append-only and best-effort;
// an audit failure never fails the request.
func audit(c *gin.Context, userID *uint, action string) {
	ip := c.ClientIP()
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		IPAddress: &ip,
		Timestamp: time.Now(),
	}
	_ = config.DB.Create(&entry).Error
}
