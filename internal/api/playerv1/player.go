// Package playerv1 defines the messages of the negativespace.v1 player API.
package playerv1

// Reason codes reported by ActionResponse when a request is ignored.
const (
	ReasonUnknownTrack    = "unknown_track"
	ReasonSwitching       = "switching"
	ReasonNoTrack         = "no_track"
	ReasonDurationUnknown = "duration_unknown"
	ReasonInvalidArgument = "invalid_argument"
	ReasonClosed          = "closed"
)

// NotificationType identifies the kind of a Notification.
type NotificationType string

const (
	NotificationTypeInitialState NotificationType = "initial_state"
	NotificationTypeTrackChanged NotificationType = "track_changed"
	NotificationTypePlayState    NotificationType = "play_state"
	NotificationTypeProgress     NotificationType = "progress"
	NotificationTypeImmersive    NotificationType = "immersive"
)

// Track is a catalog entry.
type Track struct {
	Id     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Cover  string `json:"cover,omitempty"`
	Desc   string `json:"desc,omitempty"`
}

// Status is the player state as seen by clients.
type Status struct {
	Current       *Track  `json:"current,omitempty"`
	State         string  `json:"state"`
	Phase         string  `json:"phase"`
	Switching     bool    `json:"switching"`
	Volume        float64 `json:"volume"`
	PositionMs    int64   `json:"position_ms"`
	DurationMs    int64   `json:"duration_ms"`
	DurationKnown bool    `json:"duration_known"`

	Percent    float64 `json:"percent"`
	Elapsed    string  `json:"elapsed"`
	Total      string  `json:"total"`
	BarVisible bool    `json:"bar_visible"`
	Immersive  bool    `json:"immersive"`
	Grayscale  bool    `json:"grayscale"`
}

type ListTracksRequest struct{}

type ListTracksResponse struct {
	Tracks []*Track `json:"tracks"`
}

type PlayRequest struct {
	TrackId int `json:"track_id"`
}

type ToggleRequest struct{}

type NextRequest struct{}

// SeekRequest carries either a fraction in [0,1] or a click position on a
// progress line of the given width.
type SeekRequest struct {
	Fraction *float64 `json:"fraction,omitempty"`
	ClickX   float64  `json:"click_x,omitempty"`
	Width    float64  `json:"width,omitempty"`
}

type SetImmersiveRequest struct {
	Open bool `json:"open"`
}

// ActionResponse answers every control request. Ignored requests are not
// errors: Accepted is false and Reason names the cause.
type ActionResponse struct {
	Accepted bool    `json:"accepted"`
	Reason   string  `json:"reason,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Status *Status `json:"status"`
}

type SubscribeRequest struct{}

// Notification is pushed to subscribers.
type Notification struct {
	Type       NotificationType `json:"type"`
	SequenceNo uint64           `json:"sequence_no"`
	Status     *Status          `json:"status,omitempty"`
}
