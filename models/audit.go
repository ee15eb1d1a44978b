package models

import "time"

// AuditLog is append-only; UserID goes NULL when the actor is deleted.
type AuditLog struct {
	AuditLogID uint      `gorm:"primaryKey;column:audit_log_id" json:"audit_log_id"`
	UserID     *uint     `gorm:"column:user_id" json:"user_id,omitempty"`
	Action     string    `gorm:"column:action" json:"action"`
	IPAddress  *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	Timestamp  time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type ContactSubmission struct {
	ContactID   uint      `gorm:"primaryKey;column:contact_id" json:"contact_id"`
	Name        string    `gorm:"column:name" json:"name"`
	Email       string    `gorm:"column:email" json:"email"`
	Subject     string    `gorm:"column:subject" json:"subject"`
	Message     string    `gorm:"column:message" json:"message"`
	SubmittedAt time.Time `gorm:"column:submitted_at" json:"submitted_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
