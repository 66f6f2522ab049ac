// Package check defines the verdict format shared by all check types.
package check

// Severity is the four-level monitoring-plugin outcome of a check.
type Severity string

const (
	SeverityOK       Severity = "OK"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
	SeverityUnknown  Severity = "UNKNOWN"
)

// ExitCode maps a severity to the conventional monitoring-plugin exit code.
func (s Severity) ExitCode() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return 3
	}
}

// Verdict is the single outcome of one check invocation.
type Verdict struct {
	Severity Severity
	Message  string
}

// Line renders the one-line plugin output. The severity word always comes
// first so the monitoring framework can parse it.
func (v *Verdict) Line() string {
	return string(v.Severity) + " - " + v.Message
}
