package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		expected NullSettings
		wantErr  bool
	}{
		{
			name:     "defaults",
			settings: nil,
			expected: NullSettings{TrackLengthSec: 30, ProgressIntervalMs: 250},
		},
		{
			name:     "explicit",
			settings: map[string]any{"track_length_sec": 5, "progress_interval_ms": 50},
			expected: NullSettings{TrackLengthSec: 5, ProgressIntervalMs: 50},
		},
		{
			name:     "string values",
			settings: map[string]any{"track_length_sec": "12"},
			expected: NullSettings{TrackLengthSec: 12, ProgressIntervalMs: 250},
		},
		{
			name:     "interval too small",
			settings: map[string]any{"progress_interval_ms": 1},
			wantErr:  true,
		},
		{
			name:     "not a number",
			settings: map[string]any{"track_length_sec": "long"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s NullSettings
			err := decodeSettings(tt.settings, &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestDecodeSettings_Speaker(t *testing.T) {
	var s SpeakerSettings
	require.NoError(t, decodeSettings(map[string]any{"sample_rate": 48000}, &s))
	assert.Equal(t, SpeakerSettings{SampleRate: 48000, BufferMs: 100, ProgressIntervalMs: 250}, s)

	assert.Error(t, decodeSettings(map[string]any{"sample_rate": 100}, &SpeakerSettings{}))
}

func TestOpen(t *testing.T) {
	out, err := Open(DriverNull, map[string]any{"track_length_sec": 3})
	require.NoError(t, err)
	defer out.Close()

	require.NoError(t, out.SetSource("audio/1.mp3"))
	d, ok := out.Duration()
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, d)

	_, err = Open("alsa", nil)
	assert.Error(t, err)

	_, err = Open(DriverNull, map[string]any{"track_length_sec": 0, "progress_interval_ms": 5})
	assert.Error(t, err)
}
