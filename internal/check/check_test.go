package check

import (
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		severity Severity
		expected int
	}{
		{SeverityOK, 0},
		{SeverityWarning, 1},
		{SeverityCritical, 2},
		{SeverityUnknown, 3},
		{Severity("BOGUS"), 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			if code := tt.severity.ExitCode(); code != tt.expected {
				t.Errorf("expected exit code %d, got %d", tt.expected, code)
			}
			if code := tt.severity.ExitCode(); code < 0 || code > 3 {
				t.Errorf("exit code %d out of range", code)
			}
		})
	}
}

func TestLineStartsWithSeverity(t *testing.T) {
	v := &Verdict{Severity: SeverityCritical, Message: "pool tank is DEGRADED"}
	line := v.Line()
	if !strings.HasPrefix(line, "CRITICAL ") {
		t.Errorf("expected line to start with severity word, got %q", line)
	}
	if strings.Fields(line)[0] != "CRITICAL" {
		t.Errorf("expected first token CRITICAL, got %q", strings.Fields(line)[0])
	}
	if !strings.Contains(line, "pool tank is DEGRADED") {
		t.Errorf("expected message in line, got %q", line)
	}
}

func TestLineFormat(t *testing.T) {
	v := &Verdict{Severity: SeverityOK, Message: "No problem alerts"}
	if got := v.Line(); got != "OK - No problem alerts" {
		t.Errorf("unexpected line: %q", got)
	}
}
