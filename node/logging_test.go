package node

import "testing"

func TestNewLoggerAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLogger(level)
		if err != nil {
			t.Fatalf("level %q: unexpected error: %v", level, err)
		}
		if logger == nil {
			t.Fatalf("level %q: expected non-nil logger", level)
		}
		_ = logger.Sync()
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("not-a-level"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
