package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-api/config"
	"job-board-api/models"
)

// GetProfile returns the current user's account and profile
func GetProfile(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var user models.User
	if err := config.DB.Preload("Profile").Preload("Profile.Skills").Preload("Profile.DesiredSkills").
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the owner's profile fields
func UpdateProfile(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.PreferredJobTitles != nil {
		updates["preferred_job_titles"] = *req.PreferredJobTitles
	}
	if req.JobCategories != nil {
		updates["job_categories"] = *req.JobCategories
	}
	if req.EmploymentType != nil {
		updates["employment_type"] = *req.EmploymentType
	}
	if req.PreferredLocation != nil {
		updates["preferred_location"] = *req.PreferredLocation
	}

	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "message": "Profile updated"})
}

// UpdateSettings updates privacy, notification, and appearance settings
func UpdateSettings(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var req models.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.ProfileVisibility != nil {
		updates["profile_visibility"] = *req.ProfileVisibility
	}
	if req.AllowContact != nil {
		updates["allow_contact"] = *req.AllowContact
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		updates["push_notifications"] = *req.PushNotifications
	}
	if req.DarkMode != nil {
		updates["dark_mode"] = *req.DarkMode
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

func loadOwnProfile(c *gin.Context) (*models.Profile, bool) {
	userID, _ := getCurrentUserID(c)
	var profile models.Profile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return nil, false
	}
	return &profile, true
}

// GetSkills lists the owner's skills
func GetSkills(c *gin.Context) {
	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	var skills []models.Skill
	config.DB.Where("profile_id = ?", profile.ProfileID).Find(&skills)
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// CreateSkill adds a skill to the owner's profile
func CreateSkill(c *gin.Context) {
	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	var req models.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level := req.Level
	if level == "" {
		level = "Beginner"
	}

	skill := models.Skill{
		ProfileID:   &profile.ProfileID,
		Name:        req.Name,
		Level:       level,
		Description: req.Description,
	}
	if err := config.DB.Create(&skill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create skill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

// UpdateSkill edits an owned skill
func UpdateSkill(c *gin.Context) {
	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill id"})
		return
	}

	var skill models.Skill
	if err := config.DB.Where("skill_id = ? AND profile_id = ?", skillID, profile.ProfileID).
		First(&skill).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}

	var req models.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill.Name = req.Name
	if req.Level != "" {
		skill.Level = req.Level
	}
	skill.Description = req.Description

	if err := config.DB.Save(&skill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skill": skill})
}

// DeleteSkill removes an owned skill
func DeleteSkill(c *gin.Context) {
	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill id"})
		return
	}

	res := config.DB.Where("skill_id = ? AND profile_id = ?", skillID, profile.ProfileID).
		Delete(&models.Skill{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete skill"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}

// GetSkillTags lists all normalized skill tags
func GetSkillTags(c *gin.Context) {
	var tags []models.SkillTag
	config.DB.Order("name ASC").Find(&tags)
	c.JSON(http.StatusOK, gin.H{"skill_tags": tags})
}

// SetDesiredSkills replaces the owner's desired skill tags by name,
// creating missing tags on the fly.
func SetDesiredSkills(c *gin.Context) {
	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	var req struct {
		Tags []string `json:"tags" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags, err := resolveSkillTags(req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve skill tags"})
		return
	}

	if err := config.DB.Model(profile).Association("DesiredSkills").Replace(tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update desired skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"desired_skills": tags})
}
