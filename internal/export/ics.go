package export

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// dateLayout is the MM/DD/YYYY convention the date field is entered in.
const dateLayout = "01/02/2006"

// Calendar renders the timeline as an iCalendar document, one VEVENT per
// row. Events are anchored to the project date; when the date field does
// not parse (it is free text), today's date is used so the export still
// opens in a calendar app. now supplies the anchor day and the DTSTAMP,
// letting tests pin time.
func Calendar(meta domain.Project, rows []domain.Row, now time.Time) []byte {
	day := anchorDay(meta.Date, now)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	for _, r := range rows {
		start := day.Add(time.Duration(r.StartMinute) * time.Minute)
		end := start.Add(time.Duration(r.DurationMinutes) * time.Minute)

		summary := r.Event
		if summary == "" {
			summary = NoEventPlaceholder
		}

		ev := cal.AddEvent(r.ID.String())
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(summary)
		if r.Location != "" {
			ev.SetLocation(r.Location)
		}
		if r.Notes != "" {
			ev.SetDescription(r.Notes)
		}
	}
	return []byte(cal.Serialize())
}

// CalendarFilename mirrors TextFilename with an .ics extension.
func CalendarFilename(meta domain.Project) string {
	return strings.TrimSuffix(TextFilename(meta), ".txt") + ".ics"
}

// anchorDay parses the free-text date field, falling back to the current
// day at midnight UTC.
func anchorDay(date string, now time.Time) time.Time {
	if d, err := time.Parse(dateLayout, strings.TrimSpace(date)); err == nil {
		return d
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
