package models

import "time"

// Application statuses. Interview is only reachable through the
// schedule step; Accepted and Rejected are terminal.
const (
	ApplicationPending   = "Pending"
	ApplicationReviewed  = "Reviewed"
	ApplicationInterview = "Interview"
	ApplicationAccepted  = "Accepted"
	ApplicationRejected  = "Rejected"
)

type JobApplication struct {
	ApplicationID uint      `gorm:"primaryKey;column:application_id" json:"application_id"`
	UserID        uint      `gorm:"column:user_id" json:"user_id"`
	JobID         uint      `gorm:"column:job_id" json:"job_id"`
	ResumePath    string    `gorm:"column:resume_path" json:"resume_path"`
	CoverLetter   *string   `gorm:"column:cover_letter" json:"cover_letter,omitempty"`
	Status        string    `gorm:"column:status;default:Pending" json:"status"`
	AppliedAt     time.Time `gorm:"column:applied_at" json:"applied_at"`

	InterviewScheduledAt     *time.Time `gorm:"column:interview_scheduled_at" json:"interview_scheduled_at,omitempty"`
	InterviewLocation        *string    `gorm:"column:interview_location" json:"interview_location,omitempty"`
	InterviewMeetingURL      *string    `gorm:"column:interview_meeting_url" json:"interview_meeting_url,omitempty"`
	InterviewDurationMinutes *int       `gorm:"column:interview_duration_minutes" json:"interview_duration_minutes,omitempty"`

	// Relations
	Applicant User `gorm:"foreignKey:UserID" json:"applicant,omitempty"`
	Job       Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (a *JobApplication) IsTerminal() bool {
	return a.Status == ApplicationAccepted || a.Status == ApplicationRejected
}

func (JobApplication) TableName() string {
	return "job_applications"
}

// ===== Request/Response DTOs =====

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Reviewed Interview Accepted Rejected"`
}

// InterviewScheduleRequest accepts either a combined scheduled_at or
// separate date + time fields; a date without a time defaults to 10:00.
type InterviewScheduleRequest struct {
	ScheduledAt     string `json:"scheduled_at"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	MeetingURL      string `json:"meeting_url"`
	DurationMinutes int    `json:"duration_minutes"`
}
