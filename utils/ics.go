// utils/ics.go - Minimal iCalendar invite writer
package utils

import (
	"fmt"
	"strings"
	"time"
)

// icsTimeLayout is the UTC datetime form calendar clients expect.
const icsTimeLayout = "20060102T150405Z"

// InterviewEvent carries everything needed to render one VEVENT.
type InterviewEvent struct {
	ApplicationID uint
	Start         time.Time
	End           time.Time
	Summary       string
	Location      string
	MeetingURL    string
}

// UID returns the stable event identifier keyed by application id, so
// re-sent invites overwrite the previous event in the guest's calendar.
func (e InterviewEvent) UID() string {
	return fmt.Sprintf("application-%d@job-board", e.ApplicationID)
}

func icsEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// BuildICS renders the invite document. Lines use CRLF and all
// datetimes are UTC; calendar clients reject anything looser.
func BuildICS(e InterviewEvent, now time.Time) []byte {
	var desc []string
	if e.Location != "" {
		desc = append(desc, "Location: "+e.Location)
	}
	if e.MeetingURL != "" {
		desc = append(desc, "Meeting link: "+e.MeetingURL)
	}

	var b strings.Builder
	write := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	write("BEGIN:VCALENDAR")
	write("VERSION:2.0")
	write("PRODID:-//job-board-api//interview//EN")
	write("BEGIN:VEVENT")
	write("UID:" + e.UID())
	write("DTSTAMP:" + now.UTC().Format(icsTimeLayout))
	write("DTSTART:" + e.Start.UTC().Format(icsTimeLayout))
	write("DTEND:" + e.End.UTC().Format(icsTimeLayout))
	write("SUMMARY:" + icsEscape(e.Summary))
	write("DESCRIPTION:" + icsEscape(strings.Join(desc, "\n")))
	write("END:VEVENT")
	write("END:VCALENDAR")

	return []byte(b.String())
}
