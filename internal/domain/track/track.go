// Package track provides the Track domain entity.
package track

import "strconv"

// ID identifies a track within a catalog.
type ID int

// NoID means no track is selected. Catalog ids start at 1.
const NoID ID = 0

// String returns the decimal form of the id.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Valid reports whether the id can refer to a catalog entry.
func (id ID) Valid() bool {
	return id > NoID
}

// Track represents a catalog entry.
// Tracks are defined once from configuration and never mutated afterwards.
type Track struct {
	ID       ID     // Stable catalog id
	Title    string // Track title
	Artist   string // Artist name
	AudioRef string // Audio source (file path or URI)
	CoverRef string // Cover image (file path or URI)
	Desc     string // Optional note, e.g. "00:09 Highlight"
}

// Label returns "Artist - Title", or just the title when the artist is unknown.
func (t *Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}
