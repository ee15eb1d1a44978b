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
	"job-board-api/ws"
)

func displayName(user *models.User) string {
	if user.Profile.FullName != nil && *user.Profile.FullName != "" {
		return *user.Profile.FullName
	}
	return user.Handle
}

// GetConversations lists recent conversations ordered by last message
func GetConversations(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var msgs []models.Message
	if err := config.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("sent_at DESC").
		Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		return
	}

	seen := make(map[uint]bool)
	var conversations []models.ConversationSummary
	for i := range msgs {
		partnerID := msgs[i].ReceiverID
		if partnerID == userID {
			partnerID = msgs[i].SenderID
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true

		var partner models.User
		if err := config.DB.Preload("Profile").Where("user_id = ?", partnerID).First(&partner).Error; err != nil {
			continue
		}

		var unread int64
		config.DB.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", partnerID, userID, false).
			Count(&unread)

		conversations = append(conversations, models.ConversationSummary{
			PartnerID:   partnerID,
			DisplayName: displayName(&partner),
			LastMessage: msgs[i].ToResponse(),
			UnreadCount: unread,
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetConversation returns the full thread with one partner and marks
// incoming messages read.
func GetConversation(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	partnerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var partner models.User
	if err := config.DB.Preload("Profile").
		Where("user_id = ? AND delete_at IS NULL", partnerID).
		First(&partner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var msgs []models.Message
	if err := config.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, partnerID, partnerID, userID).
		Order("sent_at ASC").
		Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return
	}

	// Mark incoming messages as read
	config.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", partnerID, userID, false).
		Update("is_read", true)

	responses := make([]models.MessageResponse, 0, len(msgs))
	for i := range msgs {
		responses = append(responses, msgs[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"partner":      gin.H{"user_id": partner.UserID, "display_name": displayName(&partner)},
		"messages":     responses,
	})
}

// SendMessage creates a message, notifies the receiver, and pushes it
// on the conversation topic.
func SendMessage(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	receiverID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || uint(receiverID) == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient"})
		return
	}

	var receiver models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", receiverID).First(&receiver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req models.MessageSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.Message{
		SenderID:   userID,
		ReceiverID: receiver.UserID,
		Content:    req.Content,
		SentAt:     time.Now(),
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	link := fmt.Sprintf("/messages/%d", userID)
	services.NotifyUser(config.DB, receiver.UserID, models.NotificationMessage,
		"New message", "You have a new message.", &link, &userID)

	ws.PublishJSON(ws.ChatTopic(userID, receiver.UserID), "chat_message", map[string]interface{}{
		"message": msg.ToResponse(),
	})

	c.JSON(http.StatusCreated, gin.H{"message": msg.ToResponse()})
}

// EditMessage rewrites an owned, non-deleted message
func EditMessage(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	msgID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	var msg models.Message
	if err := config.DB.Where("message_id = ?", msgID).First(&msg).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if msg.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender may edit a message"})
		return
	}
	if msg.IsDeleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot edit a deleted message"})
		return
	}

	var req models.MessageEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&msg).Updates(map[string]interface{}{
		"content":   req.Content,
		"is_edited": true,
		"edited_at": &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit message"})
		return
	}

	msg.Content = req.Content
	msg.IsEdited = true
	msg.EditedAt = &now
	c.JSON(http.StatusOK, gin.H{"message": msg.ToResponse()})
}

// DeleteMessage soft-deletes: the row stays and responses show a
// placeholder instead of the content.
func DeleteMessage(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	msgID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	var msg models.Message
	if err := config.DB.Where("message_id = ?", msgID).First(&msg).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if msg.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender may delete a message"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&msg).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	msg.IsDeleted = true
	c.JSON(http.StatusOK, gin.H{"message": msg.ToResponse()})
}
