package logging

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewBuildsConsoleAndJSONLoggers(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		logger, err := New("debug", format)
		if err != nil {
			t.Fatalf("format %q: unexpected error %v", format, err)
		}
		if !logger.Core().Enabled(-1) {
			t.Fatalf("format %q: expected debug level to be enabled", format)
		}
	}
}

func TestMustFallsBackToNop(t *testing.T) {
	if logger := Must("nope", "json"); logger == nil {
		t.Fatal("expected a logger")
	}
}
