package domain

// ClockText is a 12-hour clock value exactly as the user typed it.
// The coverage windows are display metadata only, so the raw strings are
// kept rather than a decoded minute count; the exporters print them
// verbatim.
type ClockText struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period string `json:"period"`
}

// CoverageWindow is the span a photographer or videographer is booked for.
type CoverageWindow struct {
	Start ClockText `json:"start"`
	End   ClockText `json:"end"`
}

// Project holds the wedding metadata edited alongside the timeline rows.
// It is carried by the session and written into saved project documents,
// but the timeline engine never reads it.
type Project struct {
	Date  string `json:"date"` // free text, MM/DD/YYYY by convention
	Bride string `json:"bride"`
	Groom string `json:"groom"`

	PhotoCoverage CoverageWindow `json:"photo_coverage"`
	VideoCoverage CoverageWindow `json:"video_coverage"`
}

// NewProject returns project metadata with the default coverage windows
// (12:00 PM to 5:00 PM for both photographers and videographers).
func NewProject() Project {
	window := CoverageWindow{
		Start: ClockText{Hour: "12", Minute: "00", Period: "PM"},
		End:   ClockText{Hour: "5", Minute: "00", Period: "PM"},
	}
	return Project{
		PhotoCoverage: window,
		VideoCoverage: window,
	}
}
