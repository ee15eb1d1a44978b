package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/services"
)

// resolveSkillTags maps tag names to SkillTag rows, creating new tags
// as needed. Names are deduplicated case-insensitively.
func resolveSkillTags(names []string) ([]models.SkillTag, error) {
	seen := make(map[string]bool)
	var tags []models.SkillTag
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		var tag models.SkillTag
		err := config.DB.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.SkillTag{Name: name}
			err = config.DB.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetJobs lists active jobs, newest first
func GetJobs(c *gin.Context) {
	var jobs []models.Job
	q := config.DB.Preload("Skills").Order("create_at DESC")

	if mine := c.Query("mine"); mine == "true" {
		userID, _ := getCurrentUserID(c)
		q = q.Where("user_id = ?", userID)
	} else {
		q = q.Where("status = ?", models.JobStatusActive)
	}

	if err := q.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob returns one job
func GetJob(c *gin.Context) {
	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var job models.Job
	if err := config.DB.Preload("Skills").Preload("Poster").
		Where("job_id = ?", jobID).
		First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// CreateJob posts a new job and fans out notifications to accounts
// whose declared skills match the job text.
func CreateJob(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var req models.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusActive
	}

	job := models.Job{
		UserID:          userID,
		Title:           req.Title,
		CompanyName:     req.CompanyName,
		Description:     req.Description,
		Location:        req.Location,
		EmploymentType:  req.EmploymentType,
		WorkingSchedule: req.WorkingSchedule,
		Status:          status,
		CreateAt:        time.Now(),
	}
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	if len(req.SkillTags) > 0 {
		tags, err := resolveSkillTags(req.SkillTags)
		if err == nil {
			_ = config.DB.Model(&job).Association("Skills").Replace(tags)
			job.Skills = tags
		}
	}

	audit(c, &userID, fmt.Sprintf("job_created job_id=%d", job.JobID))

	// Fan-out is synchronous with the create; a notification failure
	// never rolls the job back.
	if job.Status == models.JobStatusActive {
		services.NewFeedService(config.DB).FanOutJobNotifications(&job)
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// UpdateJob edits an owned job
func UpdateJob(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var job models.Job
	if err := config.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if job.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the job owner may edit it"})
		return
	}

	var req models.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.EmploymentType != nil {
		updates["employment_type"] = *req.EmploymentType
	}
	if req.WorkingSchedule != nil {
		updates["working_schedule"] = *req.WorkingSchedule
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&job).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
			return
		}
	}

	if req.SkillTags != nil {
		tags, err := resolveSkillTags(req.SkillTags)
		if err == nil {
			_ = config.DB.Model(&job).Association("Skills").Replace(tags)
		}
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// DeleteJob removes an owned job
func DeleteJob(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var job models.Job
	if err := config.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if job.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the job owner may delete it"})
		return
	}

	if err := config.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// SaveJob bookmarks a job; saving twice is a conflict, not a second row
func SaveJob(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var job models.Job
	if err := config.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	var existing models.SavedJob
	err = config.DB.Where("user_id = ? AND job_id = ?", userID, job.JobID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Job already saved"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job"})
		return
	}

	saved := models.SavedJob{UserID: userID, JobID: job.JobID, SavedAt: time.Now()}
	if err := config.DB.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saved_job": saved})
}

// UnsaveJob removes a bookmark
func UnsaveJob(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	res := config.DB.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsave job"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job unsaved"})
}

// GetSavedJobs lists the owner's bookmarks
func GetSavedJobs(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var saved []models.SavedJob
	if err := config.DB.Preload("Job").Preload("Job.Skills").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_jobs": saved})
}
