package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"job-board-api/models"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    error
	}{
		{models.ApplicationPending, models.ApplicationReviewed, nil},
		{models.ApplicationPending, models.ApplicationAccepted, nil},
		{models.ApplicationPending, models.ApplicationRejected, nil},
		{models.ApplicationReviewed, models.ApplicationAccepted, nil},
		{models.ApplicationReviewed, models.ApplicationRejected, nil},
		{models.ApplicationInterview, models.ApplicationAccepted, nil},
		{models.ApplicationInterview, models.ApplicationRejected, nil},
		{models.ApplicationPending, models.ApplicationInterview, ErrScheduleRequired},
		{models.ApplicationReviewed, models.ApplicationInterview, ErrScheduleRequired},
		{models.ApplicationAccepted, models.ApplicationInterview, ErrScheduleRequired},
		{models.ApplicationReviewed, models.ApplicationPending, ErrInvalidTransition},
		{models.ApplicationAccepted, models.ApplicationRejected, ErrInvalidTransition},
		{models.ApplicationRejected, models.ApplicationReviewed, ErrInvalidTransition},
	}

	for _, tc := range cases {
		if got := ValidateTransition(tc.current, tc.target); !errors.Is(got, tc.want) {
			t.Errorf("ValidateTransition(%s, %s) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestParseInterviewTimeDateDefaultsToTenAM(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	req := &models.InterviewScheduleRequest{Date: "2026-04-10"}

	got, err := ParseInterviewTime(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseInterviewTimeCombinedField(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		scheduledAt string
		want        time.Time
	}{
		{"2026-04-10T14:30:00Z", time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)},
		{"2026-04-10T14:30:00+02:00", time.Date(2026, 4, 10, 12, 30, 0, 0, time.UTC)},
		{"2026-04-10T14:30", time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)},
		{"2026-04-10 14:30", time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		req := &models.InterviewScheduleRequest{ScheduledAt: tc.scheduledAt}
		got, err := ParseInterviewTime(req, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.scheduledAt, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("%s: got %v, want %v UTC", tc.scheduledAt, got, tc.want)
		}
	}
}

func TestParseInterviewTimeRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []*models.InterviewScheduleRequest{
		{},
		{ScheduledAt: "next tuesday"},
		{Date: "10/04/2026"},
		{Date: "2026-04-10", Time: "25:99"},
		{ScheduledAt: "2026-03-01T10:00:00Z"},
	}

	for _, req := range cases {
		if _, err := ParseInterviewTime(req, now); !errors.Is(err, ErrInvalidDateTime) {
			t.Errorf("%+v: expected ErrInvalidDateTime, got %v", req, err)
		}
	}
}

func TestInterviewDuration(t *testing.T) {
	if d := InterviewDuration(&models.InterviewScheduleRequest{}); d != 45*time.Minute {
		t.Fatalf("expected default 45m, got %v", d)
	}
	if d := InterviewDuration(&models.InterviewScheduleRequest{DurationMinutes: 90}); d != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", d)
	}
}

func applicationLoadSteps(appID, applicantID, jobID, ownerID int64, status string) []*queryStep {
	return []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .job_applications. WHERE application_id = \\? ORDER BY .job_applications.\\..application_id. LIMIT \\?"),
			args:    []driver.Value{appID, int64(1)},
			columns: []string{"application_id", "user_id", "job_id", "status"},
			rows:    [][]driver.Value{{appID, applicantID, jobID, status}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .users. WHERE .users.\\..user_id. = \\?"),
			args:    []driver.Value{applicantID},
			columns: []string{"user_id", "handle", "email"},
			rows:    [][]driver.Value{{applicantID, "anna", "anna@example.com"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM .jobs. WHERE .jobs.\\..job_id. = \\?"),
			args:    []driver.Value{jobID},
			columns: []string{"job_id", "user_id", "title"},
			rows:    [][]driver.Value{{jobID, ownerID, "Backend Engineer"}},
		},
	}
}

func TestChangeStatusRejectsNonOwner(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, applicationLoadSteps(5, 3, 10, 2, models.ApplicationPending))
	defer cleanup()

	svc := NewWorkflowService(db)
	if _, err := svc.ChangeStatus(5, 9, models.ApplicationReviewed); !errors.Is(err, ErrNotJobOwner) {
		t.Fatalf("expected ErrNotJobOwner, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestChangeStatusInterviewNeverUpdatesDirectly(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, applicationLoadSteps(5, 3, 10, 9, models.ApplicationReviewed))
	defer cleanup()

	svc := NewWorkflowService(db)
	app, err := svc.ChangeStatus(5, 9, models.ApplicationInterview)
	if !errors.Is(err, ErrScheduleRequired) {
		t.Fatalf("expected ErrScheduleRequired, got %v", err)
	}
	if app == nil || app.Status != models.ApplicationReviewed {
		t.Fatalf("status must be untouched, got %+v", app)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestScheduleInterviewPersistsAndNotifiesOnce(t *testing.T) {
	steps := applicationLoadSteps(5, 3, 10, 9, models.ApplicationReviewed)
	start := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)
	steps = append(steps,
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .job_applications. SET .interview_duration_minutes.=\\?,.interview_location.=\\?,.interview_meeting_url.=\\?,.interview_scheduled_at.=\\?,.status.=\\? WHERE application_id = \\?"),
			args:    []driver.Value{int64(45), "HQ Floor 3", "", start, models.ApplicationInterview, int64(5)},
			result:  scriptedResult{rowsAffected: 1},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO .notifications."),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	)

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	req := &models.InterviewScheduleRequest{Date: "2026-04-10", Time: "09:30", Location: "HQ Floor 3"}
	app, err := svc.ScheduleInterview(5, 9, req, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != models.ApplicationInterview {
		t.Fatalf("expected Interview status, got %s", app.Status)
	}
	if app.InterviewScheduledAt == nil || !app.InterviewScheduledAt.Equal(start) {
		t.Fatalf("unexpected schedule: %v", app.InterviewScheduledAt)
	}
	if app.InterviewDurationMinutes == nil || *app.InterviewDurationMinutes != 45 {
		t.Fatalf("unexpected duration: %v", app.InterviewDurationMinutes)
	}

	// verifyComplete also pins the write count: one row update, exactly
	// one notification insert.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestScheduleInterviewRejectsMalformedDateTime(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, applicationLoadSteps(5, 3, 10, 9, models.ApplicationReviewed))
	defer cleanup()

	svc := NewWorkflowService(db)
	req := &models.InterviewScheduleRequest{ScheduledAt: "next tuesday"}
	if _, err := svc.ScheduleInterview(5, 9, req, time.Now()); !errors.Is(err, ErrInvalidDateTime) {
		t.Fatalf("expected ErrInvalidDateTime, got %v", err)
	}

	// No UPDATE or INSERT steps were scripted, so any write would have
	// failed the test already.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestBuildInviteRequiresSchedule(t *testing.T) {
	app := &models.JobApplication{ApplicationID: 5, Status: models.ApplicationInterview}
	if _, err := BuildInvite(app, time.Now()); !errors.Is(err, ErrInvalidDateTime) {
		t.Fatalf("expected ErrInvalidDateTime, got %v", err)
	}

	start := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	app.InterviewScheduledAt = &start
	app.Job = models.Job{Title: "Backend Engineer"}
	invite, err := BuildInvite(app, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(invite)
	for _, line := range []string{
		"UID:application-5@job-board",
		"DTSTART:20260410T100000Z",
		"DTEND:20260410T104500Z",
		"SUMMARY:Interview: Backend Engineer",
	} {
		if !regexp.MustCompile(regexp.QuoteMeta(line)).MatchString(doc) {
			t.Fatalf("invite missing %q:\n%s", line, doc)
		}
	}
}

func TestBuildInviteUsesStoredDuration(t *testing.T) {
	start := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	minutes := 90
	app := &models.JobApplication{
		ApplicationID:            5,
		Status:                   models.ApplicationInterview,
		InterviewScheduledAt:     &start,
		InterviewDurationMinutes: &minutes,
		Job:                      models.Job{Title: "Backend Engineer"},
	}

	invite, err := BuildInvite(app, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(invite), "DTEND:20260410T113000Z") {
		t.Fatalf("expected 90 minute event, got:\n%s", invite)
	}
}
