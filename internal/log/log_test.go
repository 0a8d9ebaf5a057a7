package log

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogHTTPRequestLevels(t *testing.T) {
	tests := []struct {
		name  string
		entry HTTPLogEntry
		level string
	}{
		{"page view", HTTPLogEntry{Method: "GET", Path: "/page/weather", Status: 200}, "info"},
		{"server error", HTTPLogEntry{Method: "GET", Path: "/page/weather", Status: 500}, "error"},
		{"health check", HTTPLogEntry{Method: "GET", Path: "/healthz", Status: 200}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			use(zap.New(core))
			defer func() { base, sugar = nil, nil }()

			tt.entry.Duration = 5 * time.Millisecond
			LogHTTPRequest(tt.entry)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 log entry, got %d", len(entries))
			}
			if got := entries[0].Level.String(); got != tt.level {
				t.Errorf("expected level %s, got %s", tt.level, got)
			}
			if entries[0].ContextMap()["path"] != tt.entry.Path {
				t.Errorf("expected path field %q, got %v", tt.entry.Path, entries[0].ContextMap()["path"])
			}
		})
	}
}

func TestFallbackLogger(t *testing.T) {
	base, sugar = nil, nil
	if GetSugaredLogger() == nil {
		t.Fatal("expected a fallback sugared logger")
	}
	if GetZapLogger() == nil {
		t.Fatal("expected a fallback zap logger")
	}
	Infof("fallback logger works: %d", 1)
}

func TestInitLevels(t *testing.T) {
	defer func() { base, sugar = nil, nil }()

	tests := []struct {
		debug     bool
		wantDebug bool
	}{
		{debug: true, wantDebug: true},
		{debug: false, wantDebug: false},
	}
	for _, tt := range tests {
		if err := Init(tt.debug); err != nil {
			t.Fatalf("Init(%v): %v", tt.debug, err)
		}
		if got := GetZapLogger().Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
			t.Errorf("Init(%v): debug enabled = %v, want %v", tt.debug, got, tt.wantDebug)
		}
		if !GetZapLogger().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("Init(%v): info should always be enabled", tt.debug)
		}
	}
}
