package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	cases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{DebugLevel, true, true},
		{InfoLevel, false, true},
		{"WARN", false, false},
		{"bogus", false, true},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		log := New(tc.level, &buf)
		log.Debugw("debug_event")
		log.Infow("info_event", "device_id", "fan-1")
		_ = log.Sync()

		out := buf.String()
		if got := strings.Contains(out, "debug_event"); got != tc.wantDebug {
			t.Fatalf("level %q: debug logged=%v want %v", tc.level, got, tc.wantDebug)
		}
		if got := strings.Contains(out, "info_event"); got != tc.wantInfo {
			t.Fatalf("level %q: info logged=%v want %v", tc.level, got, tc.wantInfo)
		}
		if tc.wantInfo && !strings.Contains(out, "INFO") {
			t.Fatalf("expected capitalised level in %q", out)
		}
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(ErrorLevel)
	b := Get(DebugLevel)
	if a != b {
		t.Fatalf("expected the same logger instance")
	}
	Nop().Infow("discarded")
}
