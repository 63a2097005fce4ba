package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/export"
)

func TestCalendar_oneEventPerRow(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	rowID := uuid.New()
	rows := []domain.Row{
		{
			ID:              rowID,
			Location:        "Chapel",
			StartMinute:     720, // 12:00 PM on the project date
			Event:           "Ceremony: Average",
			DurationMinutes: 30,
			Notes:           "unplugged ceremony",
		},
		{
			ID:              uuid.New(),
			StartMinute:     750,
			DurationMinutes: 20,
		},
	}

	got := string(export.Calendar(testMeta(), rows, now))

	assert.Equal(t, 2, strings.Count(got, "BEGIN:VEVENT"))
	assert.Contains(t, got, "SUMMARY:Ceremony: Average")
	assert.Contains(t, got, "SUMMARY:(no event)")
	assert.Contains(t, got, "LOCATION:Chapel")
	assert.Contains(t, got, "DESCRIPTION:unplugged ceremony")
	assert.Contains(t, got, "UID:"+rowID.String())
	// 12:00 PM on 06/14/2026.
	assert.Contains(t, got, "DTSTART:20260614T120000Z")
	assert.Contains(t, got, "DTEND:20260614T123000Z")
}

func TestCalendar_unparseableDateAnchorsToToday(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)
	meta := testMeta()
	meta.Date = "sometime in June"
	rows := []domain.Row{{ID: uuid.New(), StartMinute: 600, DurationMinutes: 15, Event: "Groom: Portraits"}}

	got := string(export.Calendar(meta, rows, now))

	require.Contains(t, got, "DTSTART:20260601T100000Z")
}

func TestCalendarFilename(t *testing.T) {
	meta := domain.Project{Bride: "Ava", Groom: "Jon"}
	assert.Equal(t, "Ava_Jon_Timeline.ics", export.CalendarFilename(meta))
}
