package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newBufferLogger(level zapcore.Level) (Logger, *zaptest.Buffer) {
	buf := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return FromZap(zap.New(zapcore.NewCore(enc, buf, level))), buf
}

func TestLogger_WritesFields(t *testing.T) {
	l, buf := newBufferLogger(zapcore.DebugLevel)

	l.Info("calculated",
		String("structure", "1tyl"),
		Int("lines", 85),
		Bool("stale", false),
		Err(errors.New("boom")),
	)

	out := buf.String()
	assert.Contains(t, out, `"msg":"calculated"`)
	assert.Contains(t, out, `"structure":"1tyl"`)
	assert.Contains(t, out, `"lines":85`)
	assert.Contains(t, out, `"stale":false`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(zapcore.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_WithAndNamed(t *testing.T) {
	l, buf := newBufferLogger(zapcore.DebugLevel)

	l.Named("menu").With(String("widget", "submit")).Debug("pressed")

	out := buf.String()
	assert.Contains(t, out, `"logger":"menu"`)
	assert.Contains(t, out, `"widget":"submit"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chemint.log")

	l, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("written to file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNew_ConsoleFormat(t *testing.T) {
	l, err := New(Config{Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	l, buf := newBufferLogger(zapcore.DebugLevel)
	SetDefault(l)
	SetDefault(nil)

	Default().Info("via default")
	assert.Contains(t, buf.String(), "via default")
}
