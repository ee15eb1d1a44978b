package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/utils"
	"job-board-api/ws"
)

var (
	// ErrScheduleRequired signals that Interview cannot be reached by a
	// plain status update; the caller must go through the schedule step.
	ErrScheduleRequired = errors.New("interview status requires a schedule")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotJobOwner       = errors.New("only the job owner may change this application")
	ErrInvalidDateTime   = errors.New("invalid interview date/time")
)

const (
	defaultInterviewHour     = 10
	defaultInterviewDuration = 45 * time.Minute
)

// ValidateTransition enforces the application state machine:
// Pending -> Reviewed -> Interview -> {Accepted, Rejected}, with
// Accepted/Rejected terminal and Interview reachable only via the
// schedule step.
func ValidateTransition(current, target string) error {
	if target == models.ApplicationInterview {
		return ErrScheduleRequired
	}
	switch current {
	case models.ApplicationPending:
		switch target {
		case models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected:
			return nil
		}
	case models.ApplicationReviewed:
		switch target {
		case models.ApplicationAccepted, models.ApplicationRejected:
			return nil
		}
	case models.ApplicationInterview:
		switch target {
		case models.ApplicationAccepted, models.ApplicationRejected:
			return nil
		}
	}
	return ErrInvalidTransition
}

// ParseInterviewTime builds the UTC interview datetime from either the
// combined scheduled_at field or separate date and time fields. A date
// without a time defaults to 10:00. The result must be in the future.
func ParseInterviewTime(req *models.InterviewScheduleRequest, now time.Time) (time.Time, error) {
	var (
		parsed time.Time
		err    error
	)

	switch {
	case req.ScheduledAt != "":
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
			parsed, err = time.Parse(layout, req.ScheduledAt)
			if err == nil {
				break
			}
		}
		if err != nil {
			return time.Time{}, ErrInvalidDateTime
		}
	case req.Date != "":
		clock := req.Time
		if clock == "" {
			clock = fmt.Sprintf("%02d:00", defaultInterviewHour)
		}
		parsed, err = time.Parse("2006-01-02 15:04", req.Date+" "+clock)
		if err != nil {
			return time.Time{}, ErrInvalidDateTime
		}
	default:
		return time.Time{}, ErrInvalidDateTime
	}

	parsed = parsed.UTC()
	if !parsed.After(now.UTC()) {
		return time.Time{}, ErrInvalidDateTime
	}
	return parsed, nil
}

// InterviewDuration resolves the requested duration, defaulting to 45m.
func InterviewDuration(req *models.InterviewScheduleRequest) time.Duration {
	if req.DurationMinutes > 0 {
		return time.Duration(req.DurationMinutes) * time.Minute
	}
	return defaultInterviewDuration
}

// WorkflowService drives application status changes and interview
// scheduling.
type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

func (s *WorkflowService) loadApplication(id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := s.db.Preload("Job").Preload("Applicant").
		Where("application_id = ?", id).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ChangeStatus applies a non-Interview transition on behalf of actorID.
// Interview is special-cased: it returns ErrScheduleRequired without
// touching the row.
func (s *WorkflowService) ChangeStatus(applicationID, actorID uint, target string) (*models.JobApplication, error) {
	app, err := s.loadApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Job.UserID != actorID {
		return nil, ErrNotJobOwner
	}
	if err := ValidateTransition(app.Status, target); err != nil {
		return app, err
	}

	if err := s.db.Model(&models.JobApplication{}).
		Where("application_id = ?", app.ApplicationID).
		Update("status", target).Error; err != nil {
		return nil, err
	}
	app.Status = target

	title := "Application " + target
	msg := fmt.Sprintf("Your application for %q is now %s.", app.Job.Title, target)
	link := fmt.Sprintf("/applications/%d", app.ApplicationID)
	NotifyUser(s.db, app.UserID, models.NotificationJobApplication, title, msg, &link, &app.Job.UserID)

	return app, nil
}

// ScheduleInterview validates the schedule, persists the interview
// fields together with status=Interview, notifies the applicant, and
// emails the calendar invite. The status only becomes Interview here.
func (s *WorkflowService) ScheduleInterview(applicationID, actorID uint, req *models.InterviewScheduleRequest, now time.Time) (*models.JobApplication, error) {
	app, err := s.loadApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Job.UserID != actorID {
		return nil, ErrNotJobOwner
	}
	if app.IsTerminal() {
		return app, ErrInvalidTransition
	}

	start, err := ParseInterviewTime(req, now)
	if err != nil {
		return app, err
	}

	minutes := int(InterviewDuration(req) / time.Minute)
	updates := map[string]interface{}{
		"status":                     models.ApplicationInterview,
		"interview_scheduled_at":     start,
		"interview_location":         req.Location,
		"interview_meeting_url":      req.MeetingURL,
		"interview_duration_minutes": minutes,
	}
	if err := s.db.Model(&models.JobApplication{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	app.Status = models.ApplicationInterview
	app.InterviewScheduledAt = &start
	app.InterviewDurationMinutes = &minutes
	if req.Location != "" {
		app.InterviewLocation = &req.Location
	}
	if req.MeetingURL != "" {
		app.InterviewMeetingURL = &req.MeetingURL
	}

	link := fmt.Sprintf("/applications/%d", app.ApplicationID)
	NotifyUser(s.db, app.UserID, models.NotificationInterview,
		"Interview scheduled",
		fmt.Sprintf("Interview for %q on %s.", app.Job.Title, start.Format("2006-01-02 15:04 MST")),
		&link, &app.Job.UserID)

	s.sendInviteMail(app, start, time.Duration(minutes)*time.Minute)
	publishInterviewScheduled(app)

	return app, nil
}

// BuildInvite renders the ICS document for a scheduled application,
// using the duration stored at scheduling time so the download matches
// the emailed invite.
func BuildInvite(app *models.JobApplication, now time.Time) ([]byte, error) {
	if app.InterviewScheduledAt == nil {
		return nil, ErrInvalidDateTime
	}
	duration := defaultInterviewDuration
	if app.InterviewDurationMinutes != nil && *app.InterviewDurationMinutes > 0 {
		duration = time.Duration(*app.InterviewDurationMinutes) * time.Minute
	}
	event := utils.InterviewEvent{
		ApplicationID: app.ApplicationID,
		Start:         *app.InterviewScheduledAt,
		End:           app.InterviewScheduledAt.Add(duration),
		Summary:       "Interview: " + app.Job.Title,
	}
	if app.InterviewLocation != nil {
		event.Location = *app.InterviewLocation
	}
	if app.InterviewMeetingURL != nil {
		event.MeetingURL = *app.InterviewMeetingURL
	}
	return utils.BuildICS(event, now), nil
}

// sendInviteMail emails the calendar invite to the applicant.
// Best-effort: transport failures are logged and swallowed.
func (s *WorkflowService) sendInviteMail(app *models.JobApplication, start time.Time, duration time.Duration) {
	if app.Applicant.Email == "" {
		return
	}

	event := utils.InterviewEvent{
		ApplicationID: app.ApplicationID,
		Start:         start,
		End:           start.Add(duration),
		Summary:       "Interview: " + app.Job.Title,
	}
	if app.InterviewLocation != nil {
		event.Location = *app.InterviewLocation
	}
	if app.InterviewMeetingURL != nil {
		event.MeetingURL = *app.InterviewMeetingURL
	}
	invite := utils.BuildICS(event, time.Now())

	body := fmt.Sprintf("<p>Your interview for <b>%s</b> is scheduled on %s (UTC).</p>",
		app.Job.Title, start.Format("2006-01-02 15:04"))
	if err := config.SendMailWithAttachment(
		[]string{app.Applicant.Email},
		"Interview scheduled: "+app.Job.Title,
		body, "invite.ics", invite,
	); err != nil {
		log.Printf("Failed to send interview invite for application %d: %v", app.ApplicationID, err)
	}
}

// publishInterviewScheduled pushes the schedule to the applicant's
// private topic.
func publishInterviewScheduled(app *models.JobApplication) {
	if app.InterviewScheduledAt == nil {
		return
	}
	ws.PublishJSON(ws.UserTopic(app.UserID), "interview_scheduled", map[string]interface{}{
		"application_id": app.ApplicationID,
		"job_id":         app.JobID,
		"scheduled_at":   app.InterviewScheduledAt.UTC().Format(time.RFC3339),
	})
}
