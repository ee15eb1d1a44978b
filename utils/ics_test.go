package utils

import (
	"strings"
	"testing"
	"time"
)

func TestBuildICSDocument(t *testing.T) {
	event := InterviewEvent{
		ApplicationID: 42,
		Start:         time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 4, 10, 10, 45, 0, 0, time.UTC),
		Summary:       "Interview: Backend Engineer",
		Location:      "HQ Floor 3",
		MeetingURL:    "https://meet.example.com/abc",
	}
	now := time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//job-board-api//interview//EN",
		"BEGIN:VEVENT",
		"UID:application-42@job-board",
		"DTSTAMP:20260401T083000Z",
		"DTSTART:20260410T100000Z",
		"DTEND:20260410T104500Z",
		"SUMMARY:Interview: Backend Engineer",
		`DESCRIPTION:Location: HQ Floor 3\nMeeting link: https://meet.example.com/abc`,
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	if got := string(BuildICS(event, now)); got != want {
		t.Fatalf("unexpected document:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildICSConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	event := InterviewEvent{
		ApplicationID: 1,
		Start:         time.Date(2026, 4, 10, 11, 0, 0, 0, loc),
		End:           time.Date(2026, 4, 10, 11, 45, 0, 0, loc),
		Summary:       "Interview",
	}

	doc := string(BuildICS(event, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	if !strings.Contains(doc, "DTSTART:20260410T100000Z") {
		t.Fatalf("start not converted to UTC:\n%s", doc)
	}
	if !strings.Contains(doc, "DTEND:20260410T104500Z") {
		t.Fatalf("end not converted to UTC:\n%s", doc)
	}
}

func TestBuildICSEscapesSpecialCharacters(t *testing.T) {
	event := InterviewEvent{
		ApplicationID: 1,
		Start:         time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 4, 10, 10, 45, 0, 0, time.UTC),
		Summary:       "Interview: Data, Platform; Infra",
	}

	doc := string(BuildICS(event, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	if !strings.Contains(doc, `SUMMARY:Interview: Data\, Platform\; Infra`) {
		t.Fatalf("summary not escaped:\n%s", doc)
	}
}

func TestUIDStablePerApplication(t *testing.T) {
	a := InterviewEvent{ApplicationID: 7}
	b := InterviewEvent{ApplicationID: 7, Summary: "changed"}
	if a.UID() != b.UID() {
		t.Fatalf("UID must depend only on the application id")
	}
	if a.UID() != "application-7@job-board" {
		t.Fatalf("unexpected UID %q", a.UID())
	}
}
