package domain

import "time"

// ProjectDocument is the JSON shape of a saved project file: the rows in
// storage order plus all wedding metadata. It is the only persistence
// format the application has; documents are written to and read from
// local files chosen by the user.
//
// Field names are stable — they are the on-disk contract. Optional
// fields missing from an older document are defaulted on load.
type ProjectDocument struct {
	Rows  []Row  `json:"rows"`
	Date  string `json:"date"`
	Bride string `json:"bride"`
	Groom string `json:"groom"`

	PhotoCoverage CoverageWindow `json:"photo_coverage"`
	VideoCoverage CoverageWindow `json:"video_coverage"`

	SavedAt time.Time `json:"saved_at"`
}
