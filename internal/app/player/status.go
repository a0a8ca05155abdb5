package player

import (
	"github.com/samber/lo"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
	"github.com/osa030/negativespace/internal/domain/track"
)

// Status combines the controller state and the board into the API view.
func (p *Player) Status() *playerv1.Status {
	s := p.controller.Status()
	b := p.board.Snapshot()

	status := &playerv1.Status{
		State:         s.State.String(),
		Phase:         s.Phase.String(),
		Switching:     s.Switching,
		Volume:        s.Volume,
		PositionMs:    s.Position.Milliseconds(),
		DurationMs:    s.Duration.Milliseconds(),
		DurationKnown: s.DurationKnown,
		Percent:       b.Percent,
		Elapsed:       b.Elapsed,
		Total:         b.Total,
		BarVisible:    b.BarVisible,
		Immersive:     b.Immersive,
		Grayscale:     b.Grayscale,
	}
	if s.Current != nil {
		status.Current = TrackToProto(*s.Current)
	}
	return status
}

// TrackToProto converts a catalog track to its API form.
func TrackToProto(t track.Track) *playerv1.Track {
	return &playerv1.Track{
		Id:     int(t.ID),
		Title:  t.Title,
		Artist: t.Artist,
		Cover:  t.CoverRef,
		Desc:   t.Desc,
	}
}

// TracksToProto converts the catalog list to its API form.
func TracksToProto(tracks []track.Track) []*playerv1.Track {
	return lo.Map(tracks, func(t track.Track, _ int) *playerv1.Track {
		return TrackToProto(t)
	})
}
