// Package catalog holds the preset event blocks offered for quick
// insertion: a fixed, ordered list of labeled durations, each mapped to
// a display color bucket by its label prefix. The list is read-only to
// the rest of the application; an operator can replace it wholesale with
// a YAML file.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one preset block: a label, how long it takes, and the color
// bucket the frontend renders it with.
type Entry struct {
	Label           string `json:"label" yaml:"label"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration"`
	Color           string `json:"color" yaml:"-"`
}

// DefaultColor is used when no bucket prefix matches a label.
const DefaultColor = "#E6E6FA" // lavender

// colorBuckets maps label prefixes to block colors. Longest matching
// prefix wins, so "Bride (Dress On)" beats a bare "Bride" bucket.
var colorBuckets = map[string]string{
	"Details":           "#FFE5B4", // peach
	"Bride (Pre-Dress)": "#FFB6C1", // light pink
	"Bride (Dress On)":  "#FF69B4", // hot pink
	"Bride & Groom:":    "#DA70D6", // orchid
	"Narration:":        "#FFA07A", // light salmon
	"Groom:":            "#98FB98", // pale green
	"Ceremony:":         "#F0E68C", // khaki
	"Reception:":        "#87CEEB", // sky blue
	"Group Photos:":     "#DDA0DD", // plum
	"Other":             "#FF8C00", // dark orange
}

// builtin is the stock block list, in presentation order.
var builtin = []Entry{
	{Label: "Details: Drone & Venue Shots", DurationMinutes: 20},
	{Label: "Details: Rings,Invitations, & Accessories", DurationMinutes: 20},
	{Label: "Details: Dress Shots", DurationMinutes: 10},
	{Label: "Bride (Pre-Dress): Bridemaids Group Shots", DurationMinutes: 10},
	{Label: "Bride (Pre-Dress): Bridemaids Individual Shots", DurationMinutes: 10},
	{Label: "Bride (Pre-Dress): Hair & Makeup Details", DurationMinutes: 10},
	{Label: "Bride (Pre-Dress): Putting Dress On", DurationMinutes: 10},
	{Label: "Bride (Dress On): Accessory Shots", DurationMinutes: 10},
	{Label: "Bride (Dress On): Bride Portraits", DurationMinutes: 15},
	{Label: "Bride (Dress On): Bridemaids Group Shots", DurationMinutes: 10},
	{Label: "Bride (Dress On): Bridemaids Individual Shots", DurationMinutes: 10},
	{Label: "Bride (Dress On): First Look with Parent", DurationMinutes: 10},
	{Label: "Bride (Dress On): First Look with Bridemaids", DurationMinutes: 10},
	{Label: "Bride (Dress On): First Look with Groom", DurationMinutes: 10},
	{Label: "Narration: Bride Record Narration", DurationMinutes: 15},
	{Label: "Narration: Groom Record Narration", DurationMinutes: 15},
	{Label: "Groom: Assisted with Tie & Jacket", DurationMinutes: 10},
	{Label: "Groom: Portraits", DurationMinutes: 15},
	{Label: "Groom: Groomsmen Group Shots", DurationMinutes: 10},
	{Label: "Groom: Groomsmen Individual Shots", DurationMinutes: 10},
	{Label: "Ceremony: Audio/Video Setup", DurationMinutes: 20},
	{Label: "Ceremony: Average", DurationMinutes: 30},
	{Label: "Ceremony: Catholic", DurationMinutes: 60},
	{Label: "Group Photos: Family (5 Groups)", DurationMinutes: 20},
	{Label: "Group Photos: Family (10 Groups)", DurationMinutes: 45},
	{Label: "Group Photos: Wedding Party Shots", DurationMinutes: 15},
	{Label: "Bride & Groom: Portraits", DurationMinutes: 20},
	{Label: "Bride & Groom: Golden Hour Portraits", DurationMinutes: 20},
	{Label: "Reception: Audio/Video Setup", DurationMinutes: 20},
	{Label: "Reception: Grand Entrances", DurationMinutes: 10},
	{Label: "Reception: Cake Cutting", DurationMinutes: 5},
	{Label: "Reception: Bride & Groom Dance", DurationMinutes: 5},
	{Label: "Reception: Bride & Parent Dance", DurationMinutes: 5},
	{Label: "Reception: Groom & Parent Dance", DurationMinutes: 5},
	{Label: "Reception: Special Dance", DurationMinutes: 5},
	{Label: "Reception: Dinner", DurationMinutes: 30},
	{Label: "Reception: Speeches (Per Speaker)", DurationMinutes: 10},
	{Label: "Reception: Open Dance Floor", DurationMinutes: 20},
	{Label: "Reception: Garder Belt Toss", DurationMinutes: 15},
	{Label: "Reception: Bouquet Toss", DurationMinutes: 15},
}

// Catalog is an immutable, ordered block list with color lookups.
type Catalog struct {
	entries []Entry
}

// Builtin returns the stock catalog.
func Builtin() *Catalog {
	return newCatalog(builtin)
}

// Parse builds a catalog from YAML of the form:
//
//	- label: "Ceremony: Average"
//	  duration: 30
//
// Colors are assigned from the prefix buckets, never from the file.
func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog.Parse: no entries")
	}
	return newCatalog(entries), nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	return Parse(data)
}

func newCatalog(entries []Entry) *Catalog {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Color = ColorFor(e.Label)
		out[i] = e
	}
	return &Catalog{entries: out}
}

// Entries returns a copy of the block list in presentation order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Find returns the entry with the exact label, if present.
func (c *Catalog) Find(label string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// ColorFor returns the color bucket for a label: the longest bucket
// prefix the label starts with, or DefaultColor when none match.
func ColorFor(label string) string {
	best, color := -1, DefaultColor
	for prefix, c := range colorBuckets {
		if strings.HasPrefix(label, prefix) && len(prefix) > best {
			best, color = len(prefix), c
		}
	}
	return color
}
