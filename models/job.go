package models

import "time"

// Job statuses
const (
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

type Job struct {
	JobID           uint      `gorm:"primaryKey;column:job_id" json:"job_id"`
	UserID          uint      `gorm:"column:user_id" json:"user_id"`
	Title           string    `gorm:"column:title" json:"title"`
	CompanyName     *string   `gorm:"column:company_name" json:"company_name,omitempty"`
	Description     string    `gorm:"column:description" json:"description"`
	Location        string    `gorm:"column:location" json:"location"`
	EmploymentType  *string   `gorm:"column:employment_type" json:"employment_type,omitempty"`
	WorkingSchedule *string   `gorm:"column:working_schedule" json:"working_schedule,omitempty"`
	Status          string    `gorm:"column:status;default:active" json:"status"`
	CreateAt        time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Poster User       `gorm:"foreignKey:UserID" json:"poster,omitempty"`
	Skills []SkillTag `gorm:"many2many:job_skills;foreignKey:JobID;joinForeignKey:job_id;References:TagID;joinReferences:tag_id" json:"skills,omitempty"`
}

func (j *Job) IsOpen() bool { return j.Status == JobStatusActive }

// SavedJob is the bookmark join table; one save per (user, job) pair.
type SavedJob struct {
	SavedJobID uint      `gorm:"primaryKey;column:saved_job_id" json:"saved_job_id"`
	UserID     uint      `gorm:"column:user_id;uniqueIndex:idx_saved_user_job" json:"user_id"`
	JobID      uint      `gorm:"column:job_id;uniqueIndex:idx_saved_user_job" json:"job_id"`
	SavedAt    time.Time `gorm:"column:saved_at" json:"saved_at"`

	Job Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// TableName overrides
func (Job) TableName() string {
	return "jobs"
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// ===== Request/Response DTOs =====

type JobCreateRequest struct {
	Title           string   `json:"title" binding:"required"`
	CompanyName     *string  `json:"company_name"`
	Description     string   `json:"description" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	EmploymentType  *string  `json:"employment_type" binding:"omitempty,oneof=FULLTIME PARTTIME INTERN CONTRACT"`
	WorkingSchedule *string  `json:"working_schedule" binding:"omitempty,oneof=full_day flexible shift"`
	Status          string   `json:"status" binding:"omitempty,oneof=active paused closed draft"`
	SkillTags       []string `json:"skill_tags"`
}

type JobUpdateRequest struct {
	Title           *string  `json:"title"`
	CompanyName     *string  `json:"company_name"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
	EmploymentType  *string  `json:"employment_type" binding:"omitempty,oneof=FULLTIME PARTTIME INTERN CONTRACT"`
	WorkingSchedule *string  `json:"working_schedule" binding:"omitempty,oneof=full_day flexible shift"`
	Status          *string  `json:"status" binding:"omitempty,oneof=active paused closed draft"`
	SkillTags       []string `json:"skill_tags"`
}
