package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/services"
)

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// ApplyToJob submits an application with a resume upload (multipart).
// The applicant cannot apply to their own job or apply twice.
func ApplyToJob(c *gin.Context) {
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
	if job.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot apply to your own job"})
		return
	}
	if !job.IsOpen() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job is not open for applications"})
		return
	}

	var existing models.JobApplication
	err = config.DB.Where("user_id = ? AND job_id = ?", userID, job.JobID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already applied to this job"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply"})
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file is required"})
		return
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(uploadPath(), "resumes", storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store resume"})
		return
	}

	app := models.JobApplication{
		UserID:     userID,
		JobID:      job.JobID,
		ResumePath: storedPath,
		Status:     models.ApplicationPending,
		AppliedAt:  time.Now(),
	}
	if cover := c.PostForm("cover_letter"); cover != "" {
		app.CoverLetter = &cover
	}
	if err := config.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply"})
		return
	}

	link := fmt.Sprintf("/applications/%d", app.ApplicationID)
	services.NotifyUser(config.DB, job.UserID, models.NotificationJobApplication,
		"New application",
		fmt.Sprintf("A new application arrived for %q.", job.Title),
		&link, &userID)

	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// GetApplications lists applications: the caller's own, or those for a
// job the caller owns (?job_id=).
func GetApplications(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	q := config.DB.Preload("Job").Preload("Applicant").Order("applied_at DESC")

	if jobIDParam := c.Query("job_id"); jobIDParam != "" {
		jobID, err := strconv.Atoi(jobIDParam)
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
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the job owner may view its applications"})
			return
		}
		q = q.Where("job_id = ?", jobID)
	} else {
		q = q.Where("user_id = ?", userID)
	}

	var apps []models.JobApplication
	if err := q.Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// UpdateApplicationStatus applies a state-machine transition. Target
// "Interview" is rejected here and redirected to the schedule step.
func UpdateApplicationStatus(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var req models.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWorkflowService(config.DB)
	app, err := svc.ChangeStatus(uint(appID), userID, req.Status)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.Is(err, services.ErrNotJobOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the job owner may change the status"})
	case errors.Is(err, services.ErrScheduleRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Interview status requires a schedule",
			"schedule": fmt.Sprintf("/api/v1/applications/%d/interview", appID),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot move from %s to %s", app.Status, req.Status)})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
	default:
		audit(c, &userID, fmt.Sprintf("application_status application_id=%d status=%s", app.ApplicationID, app.Status))
		c.JSON(http.StatusOK, gin.H{"application": app})
	}
}

// ScheduleInterview performs the schedule step: it is the only way an
// application reaches Interview status.
func ScheduleInterview(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var req models.InterviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWorkflowService(config.DB)
	app, err := svc.ScheduleInterview(uint(appID), userID, &req, time.Now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.Is(err, services.ErrNotJobOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the job owner may schedule the interview"})
	case errors.Is(err, services.ErrInvalidDateTime):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview date/time"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application is already closed"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule interview"})
	default:
		audit(c, &userID, fmt.Sprintf("interview_scheduled application_id=%d", app.ApplicationID))
		c.JSON(http.StatusOK, gin.H{"application": app})
	}
}

// DownloadInvite serves the calendar invite to the applicant or the job
// owner, nobody else.
func DownloadInvite(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var app models.JobApplication
	if err := config.DB.Preload("Job").
		Where("application_id = ?", appID).
		First(&app).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if app.UserID != userID && app.Job.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to download this invite"})
		return
	}

	invite, err := services.BuildInvite(&app, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No interview is scheduled"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invite.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", invite)
}
