package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/services"
)

// GetFeed assembles the home-feed payload for the current account
func GetFeed(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	feed, err := services.NewFeedService(config.DB).Compose(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compose feed"})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// CreatePost publishes a feed post. Content is required unless the post
// carries media.
func CreatePost(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var req models.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postType := req.PostType
	if postType == "" {
		postType = models.PostTypeText
	}

	post := models.Post{
		UserID:       userID,
		Content:      req.Content,
		PostType:     postType,
		ImagePath:    req.ImagePath,
		VideoPath:    req.VideoPath,
		ArticleTitle: req.ArticleTitle,
		CreateAt:     time.Now(),
	}
	if post.Content == "" && !post.HasMedia() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required unless the post has media"})
		return
	}

	if err := config.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPosts lists recent posts, newest first
func GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := config.DB.Preload("Author").
		Order("create_at DESC").
		Limit(50).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost removes an owned post
func DeletePost(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	res := config.DB.Where("post_id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Post{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
