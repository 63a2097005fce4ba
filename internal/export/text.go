// Package export renders a timeline for delivery outside the tool: the
// plain-text day sheet the vendor hands to the crew, and an iCalendar
// feed for calendar apps. Both render rows in display order; the caller
// is responsible for passing rows already sorted.
package export

import (
	"fmt"
	"strings"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/timecode"
)

// NoEventPlaceholder stands in for rows the user never labeled.
const NoEventPlaceholder = "(no event)"

// Text renders the plain-text day sheet: a metadata header, then one
// block per row. A row's location is printed on its own line when it
// differs from empty; by convention an empty location means "no change
// from the previous location" and prints nothing.
func Text(meta domain.Project, rows []domain.Row) []byte {
	lines := []string{
		"Date: " + meta.Date,
		"Photographers: " + windowText(meta.PhotoCoverage),
		"Videographers: " + windowText(meta.VideoCoverage),
		"Bride: " + meta.Bride,
		"Groom: " + meta.Groom,
		"",
		"Timeline:",
		"",
	}
	for _, r := range rows {
		if r.Location != "" {
			lines = append(lines, r.Location, "")
		}
		lines = append(lines, rowLine(r))
		if r.Notes != "" {
			lines = append(lines, "Notes: "+r.Notes)
		}
		lines = append(lines, "")
	}
	return []byte(strings.Join(lines, "\n"))
}

// TextFilename builds the download name from the couple's names, with
// whitespace collapsed to underscores and placeholders for blanks, e.g.
// "Ava_Smith_Jon_Doe_Timeline.txt".
func TextFilename(meta domain.Project) string {
	return safeName(meta.Bride, "Bride") + "_" + safeName(meta.Groom, "Groom") + "_Timeline.txt"
}

// ProjectFilename is the save-file counterpart of TextFilename, e.g.
// "Ava_Smith_Jon_Doe_Timeline_Project.json".
func ProjectFilename(meta domain.Project) string {
	return safeName(meta.Bride, "Bride") + "_" + safeName(meta.Groom, "Groom") + "_Timeline_Project.json"
}

func rowLine(r domain.Row) string {
	c := timecode.Encode(r.StartMinute)
	event := r.Event
	if event == "" {
		event = NoEventPlaceholder
	}
	line := fmt.Sprintf("%s:%s %s | %s | %d min", c.Hour, c.Minute, c.Period, event, r.DurationMinutes)
	if tag := coverageTag(r); tag != "" {
		line += " | " + tag
	}
	if r.Outdoor {
		line += " | Outdoor"
	}
	return line
}

// coverageTag summarizes the coverage flags, empty when neither is set.
func coverageTag(r domain.Row) string {
	switch {
	case r.PhotoCoverage && r.VideoCoverage:
		return "Photo & Video"
	case r.PhotoCoverage:
		return "Photo Only"
	case r.VideoCoverage:
		return "Video Only"
	}
	return ""
}

func windowText(w domain.CoverageWindow) string {
	return fmt.Sprintf("%s:%s %s - %s:%s %s",
		w.Start.Hour, w.Start.Minute, w.Start.Period,
		w.End.Hour, w.End.Minute, w.End.Period)
}

func safeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return strings.Join(strings.Fields(name), "_")
}
