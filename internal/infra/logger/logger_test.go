package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "INFO", want: zerolog.InfoLevel},
		{in: "warning", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "trace", want: zerolog.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false, zerolog.InfoLevel)
	l.Info().Msg("player: started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "player: started", entry[zerolog.MessageFieldName])
	assert.NotContains(t, entry, zerolog.CallerFieldName)
}

func TestNewLogger_ConsoleDebugCaller(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, true, zerolog.DebugLevel)
	l.Debug().Msg("fade step")

	assert.Contains(t, buf.String(), "fade step")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestShortCaller(t *testing.T) {
	file := filepath.Join("root", "internal", "app", "player", "player.go")
	assert.Equal(t, filepath.Join("player", "player.go")+":42", shortCaller(0, file, 42))
	assert.Equal(t, "main.go:7", shortCaller(0, "main.go", 7))
}

func TestInit_File(t *testing.T) {
	prev := zlog.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "player.log")
	require.NoError(t, Init(Config{Output: path, File: path, Level: "warn"}))

	zlog.Info().Msg("dropped")
	zlog.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestInit_UnknownLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
}
