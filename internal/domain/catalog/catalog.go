// Package catalog provides the static, ordered track list of a session.
package catalog

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/osa030/negativespace/internal/domain/track"
)

var (
	ErrEmptyCatalog = errors.New("catalog has no tracks")
	ErrInvalidID    = errors.New("track id must be positive")
	ErrDuplicateID  = errors.New("duplicate track id")
)

// Catalog is an immutable ordered list of tracks.
type Catalog struct {
	tracks []track.Track
	index  map[track.ID]int
}

// New creates a catalog from the given tracks, keeping their order.
func New(tracks []track.Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}

	for _, t := range tracks {
		if !t.ID.Valid() {
			return nil, errors.Wrapf(ErrInvalidID, "track %q has id %d", t.Title, t.ID)
		}
	}

	if dups := lo.FindDuplicatesBy(tracks, func(t track.Track) track.ID { return t.ID }); len(dups) > 0 {
		return nil, errors.Wrapf(ErrDuplicateID, "id %d", dups[0].ID)
	}

	c := &Catalog{
		tracks: make([]track.Track, len(tracks)),
		index:  make(map[track.ID]int, len(tracks)),
	}
	copy(c.tracks, tracks)
	for i, t := range c.tracks {
		c.index[t.ID] = i
	}
	return c, nil
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// IDs returns all track ids in catalog order.
func (c *Catalog) IDs() []track.ID {
	return lo.Map(c.tracks, func(t track.Track, _ int) track.ID { return t.ID })
}

// Find returns the track with the given id.
func (c *Catalog) Find(id track.ID) (track.Track, bool) {
	i, ok := c.index[id]
	if !ok {
		return track.Track{}, false
	}
	return c.tracks[i], true
}

// Contains reports whether the id is part of the catalog.
func (c *Catalog) Contains(id track.ID) bool {
	_, ok := c.index[id]
	return ok
}

// Tracks returns a copy of the tracks in catalog order.
func (c *Catalog) Tracks() []track.Track {
	result := make([]track.Track, len(c.tracks))
	copy(result, c.tracks)
	return result
}
