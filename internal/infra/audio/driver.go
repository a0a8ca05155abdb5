// Package audio provides the audio outputs driven by the playback controller.
package audio

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/negativespace/internal/app/playback"
)

// Driver names.
const (
	DriverSpeaker = "speaker"
	DriverNull    = "null"
)

// eventBuffer is the capacity of an output's event channel.
const eventBuffer = 64

var (
	// ErrNoSource is returned by Play before any source was set.
	ErrNoSource = errors.New("no source set")
	// ErrUnavailable is returned when the speaker driver is not compiled in.
	ErrUnavailable = errors.New("speaker output not available in this build")
)

// Output is a playback.Output that owns resources.
type Output interface {
	playback.Output
	// Close releases the output and closes its event channel.
	Close() error
}

// SpeakerSettings configures the speaker driver.
type SpeakerSettings struct {
	SampleRate         int `yaml:"sample_rate" mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs           int `yaml:"buffer_ms" mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=2000"`
	ProgressIntervalMs int `yaml:"progress_interval_ms" mapstructure:"progress_interval_ms" default:"250" validate:"gte=10,lte=10000"`
}

// NullSettings configures the null driver.
type NullSettings struct {
	TrackLengthSec     int `yaml:"track_length_sec" mapstructure:"track_length_sec" default:"30" validate:"gte=1"`
	ProgressIntervalMs int `yaml:"progress_interval_ms" mapstructure:"progress_interval_ms" default:"250" validate:"gte=10,lte=10000"`
}

// Open creates the output for driver, decoding its settings.
func Open(driver string, settings map[string]any) (Output, error) {
	switch driver {
	case DriverSpeaker:
		var s SpeakerSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, errors.Wrapf(err, "invalid %s settings", driver)
		}
		zlog.Info().Msgf("audio: speaker output: sample_rate=%d buffer_ms=%d", s.SampleRate, s.BufferMs)
		out, err := NewSpeaker(s)
		if err != nil {
			return nil, err
		}
		return out, nil

	case DriverNull, "":
		var s NullSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, errors.Wrapf(err, "invalid %s settings", DriverNull)
		}
		zlog.Info().Msgf("audio: null output: track_length_sec=%d", s.TrackLengthSec)
		return NewNull(s), nil

	default:
		return nil, errors.Newf("unknown output driver: %s", driver)
	}
}

// decodeSettings decodes a settings map into out, applies defaults and
// validates the result.
func decodeSettings(settings map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// send delivers ev without blocking.
func send(ch chan playback.OutputEvent, ev playback.OutputEvent) {
	select {
	case ch <- ev:
	default:
		zlog.Debug().Msgf("audio: event channel full, dropping %s", ev.Type)
	}
}
