package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Playback: PlaybackConfig{
			FadeOutMs:   400,
			FadeInMs:    600,
			StepMs:      20,
			EventBuffer: 1024,
			Shuffle:     "pool",
		},
		Output: OutputConfig{Driver: "null"},
		Catalog: CatalogConfig{
			Tracks: []TrackConfig{
				{ID: 1, Title: "Don't Mind", Artist: "The Crane", File: "audio/1.mp3"},
				{ID: 2, Title: "Playing God", Artist: "Polyphia", File: "audio/2.mp3"},
			},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty catalog",
			modify:  func(c *Config) { c.Catalog.Tracks = nil },
			wantErr: true,
			errMsg:  "Tracks",
		},
		{
			name:    "zero track id",
			modify:  func(c *Config) { c.Catalog.Tracks[0].ID = 0 },
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name:    "negative track id",
			modify:  func(c *Config) { c.Catalog.Tracks[0].ID = -3 },
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name:    "duplicate track id",
			modify:  func(c *Config) { c.Catalog.Tracks[1].ID = 1 },
			wantErr: true,
			errMsg:  "Tracks",
		},
		{
			name:    "missing file",
			modify:  func(c *Config) { c.Catalog.Tracks[1].File = "" },
			wantErr: true,
			errMsg:  "File",
		},
		{
			name:    "unknown shuffle policy",
			modify:  func(c *Config) { c.Playback.Shuffle = "weighted" },
			wantErr: true,
			errMsg:  "Shuffle",
		},
		{
			name:    "unknown output driver",
			modify:  func(c *Config) { c.Output.Driver = "alsa" },
			wantErr: true,
			errMsg:  "Driver",
		},
		{
			name:    "zero step",
			modify:  func(c *Config) { c.Playback.StepMs = 0 },
			wantErr: true,
			errMsg:  "StepMs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
catalog:
  tracks:
    - id: 1
      title: Don't Mind
      artist: The Crane
      file: audio/1.mp3
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 400*time.Millisecond, cfg.Playback.FadeOut())
	assert.Equal(t, 600*time.Millisecond, cfg.Playback.FadeIn())
	assert.Equal(t, 20*time.Millisecond, cfg.Playback.Step())
	assert.Equal(t, 1024, cfg.Playback.EventBuffer)
	assert.Equal(t, "pool", cfg.Playback.Shuffle)
	assert.False(t, cfg.Playback.Autoplay)
	assert.Equal(t, "null", cfg.Output.Driver)
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  addr: ":9090"
  hooks:
    on_started: ["echo started"]
playback:
  fade_out_ms: 200
  shuffle: random
  autoplay: true
output:
  driver: speaker
  settings:
    sample_rate: 48000
catalog:
  assets_dir: /srv/music
  tracks:
    - id: 1
      title: Don't Mind
      artist: The Crane
      file: audio/1.mp3
      cover: covers/1.jpg
      desc: "00:09 Highlight"
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"echo started"}, cfg.Server.Hooks.OnStarted)
	assert.Equal(t, 200*time.Millisecond, cfg.Playback.FadeOut())
	assert.Equal(t, 600*time.Millisecond, cfg.Playback.FadeIn())
	assert.Equal(t, "random", cfg.Playback.Shuffle)
	assert.True(t, cfg.Playback.Autoplay)
	assert.Equal(t, "speaker", cfg.Output.Driver)
	assert.Equal(t, 48000, cfg.Output.Settings["sample_rate"])
	assert.Equal(t, "00:09 Highlight", cfg.Catalog.Tracks[0].Desc)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("catalog: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("server:\n  addr: ':1'\n"))
	assert.Error(t, err, "catalog is required")
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvOutput, "speaker")
	t.Setenv(EnvAssetsDir, "/env/assets")

	cfg, err := Parse([]byte(`
server:
  addr: ":9090"
catalog:
  assets_dir: /srv/music
  tracks:
    - {id: 1, title: A, file: a.mp3}
`))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "speaker", cfg.Output.Driver)
	assert.Equal(t, "/env/assets", cfg.Catalog.AssetsDir)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  tracks:\n    - {id: 3, title: C, file: c.wav}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Catalog.Tracks, 1)
	assert.Equal(t, 3, cfg.Catalog.Tracks[0].ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalogConfig_ResolvePath(t *testing.T) {
	tests := []struct {
		name      string
		assetsDir string
		ref       string
		expected  string
	}{
		{name: "no assets dir", assetsDir: "", ref: "audio/1.mp3", expected: "audio/1.mp3"},
		{name: "relative", assetsDir: "/srv/music", ref: "audio/1.mp3", expected: "/srv/music/audio/1.mp3"},
		{name: "absolute", assetsDir: "/srv/music", ref: "/tmp/1.mp3", expected: "/tmp/1.mp3"},
		{name: "url", assetsDir: "/srv/music", ref: "https://cdn.example.com/1.mp3", expected: "https://cdn.example.com/1.mp3"},
		{name: "empty", assetsDir: "/srv/music", ref: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CatalogConfig{AssetsDir: tt.assetsDir}
			assert.Equal(t, tt.expected, c.ResolvePath(tt.ref))
		})
	}
}
