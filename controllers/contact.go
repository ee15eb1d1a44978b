package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-api/config"
	"job-board-api/models"
)

// SubmitContact persists the submission and relays it to the site
// mailbox. Unlike invite mail, a transport failure here is surfaced.
func SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission := models.ContactSubmission{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		SubmittedAt: time.Now(),
	}
	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record submission"})
		return
	}

	body := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>", req.Name, req.Email, req.Message)
	if mailbox := config.ContactMailbox(); mailbox != "" {
		if err := config.SendMail([]string{mailbox}, req.Subject, body); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to relay message"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Your message has been sent"})
}
