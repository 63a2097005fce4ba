// Package domain contains the core data types for the Wedding Timeline
// Builder. This package has zero dependencies on other internal packages
// and is imported by every other internal package (timeline, service,
// handler, export).
package domain

import (
	"github.com/google/uuid"
)

// Row is one scheduled item on the timeline.
//
// StartMinute counts minutes past midnight. It is conceptually in
// [0, 1440) but the engine does not clamp it: arithmetic during reorder
// or cascade may transiently push it outside that range, and those
// values are carried as-is.
//
// The coverage flags, Outdoor, and Notes are opaque to the timeline
// engine: they ride along through every reorder and recalculation but
// are only interpreted by the exporters.
type Row struct {
	// ID is assigned at creation and never reused or recomputed.
	// Reordering tracks rows by ID, independent of position.
	ID              uuid.UUID `json:"id"`
	Location        string    `json:"location"`
	StartMinute     int       `json:"start_minute"`
	Event           string    `json:"event"`
	DurationMinutes int       `json:"duration_minutes"`
	PhotoCoverage   bool      `json:"photo_coverage,omitempty"`
	VideoCoverage   bool      `json:"video_coverage,omitempty"`
	Outdoor         bool      `json:"outdoor,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}
