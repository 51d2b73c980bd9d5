package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLoggerLevels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=dbg a=1",
		"level=INFO msg=inf b=2",
		"level=WARN msg=wrn c=3",
		"level=ERROR msg=err d=4",
	} {
		require.Contains(t, out, want)
	}
}

func TestSlogLoggerWith(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("op", "create").Error(context.Background(), "request failed", "id", 3)

	out := buf.String()
	require.Contains(t, out, "op=create")
	require.Contains(t, out, "id=3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: " warning ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOpenFileFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "foodboard.log")
	log, closer, err := OpenFile(path, "warn")
	require.NoError(t, err)

	ctx := context.Background()
	log.Info(ctx, "quiet")
	log.Warn(ctx, "loud")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	require.False(t, strings.Contains(out, "quiet"))
	require.Contains(t, out, "msg=loud")
}

func TestDiscardDoesNotPanic(t *testing.T) {
	log := Discard()
	log.With("k", "v").Error(context.TODO(), "dropped")
}
