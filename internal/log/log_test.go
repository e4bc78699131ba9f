package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		logFn   func(l Logger)
		want    []string
		notWant []string
	}{
		{
			name:  "text handler includes message and attrs",
			cfg:   Config{},
			logFn: func(l Logger) { l.Info("indexed", "count", 3) },
			want:  []string{"indexed", "count=3"},
		},
		{
			name:    "level filters debug by default",
			cfg:     Config{},
			logFn:   func(l Logger) { l.Debug("hidden") },
			notWant: []string{"hidden"},
		},
		{
			name:  "debug level passes debug records",
			cfg:   Config{Level: slog.LevelDebug},
			logFn: func(l Logger) { l.Debug("visible") },
			want:  []string{"visible"},
		},
		{
			name:  "json handler emits json keys",
			cfg:   Config{JSON: true},
			logFn: func(l Logger) { l.Warn("skipping file") },
			want:  []string{`"msg":"skipping file"`, `"level":"WARN"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.cfg)
			tt.logFn(logger)

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("output %q should not contain %q", out, notWant)
				}
			}
		})
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	// Must not panic and must accept all levels.
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}
