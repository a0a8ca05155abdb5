package player

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/osa030/negativespace/internal/domain/catalog"
	"github.com/osa030/negativespace/internal/domain/track"
	"github.com/osa030/negativespace/internal/infra/config"
)

// CatalogFromConfig builds the catalog, resolving file and cover paths
// against the assets directory.
func CatalogFromConfig(c config.CatalogConfig) (*catalog.Catalog, error) {
	tracks := lo.Map(c.Tracks, func(tc config.TrackConfig, _ int) track.Track {
		return track.Track{
			ID:       track.ID(tc.ID),
			Title:    tc.Title,
			Artist:   tc.Artist,
			AudioRef: c.ResolvePath(tc.File),
			CoverRef: c.ResolvePath(tc.Cover),
			Desc:     tc.Desc,
		}
	})

	cat, err := catalog.New(tracks)
	if err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return cat, nil
}
