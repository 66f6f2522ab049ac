// Package alerts classifies the appliance's system alert list.
package alerts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
)

// Name is the check type name on the command line.
const Name = "alerts"

// Resource is the API resource queried by this check.
const Resource = "alert/list"

// alertRecord uses pointer fields so a missing field can be told apart from
// a zero value; every field is required.
type alertRecord struct {
	Level     *string `json:"level"`
	Dismissed *bool   `json:"dismissed"`
	Formatted *string `json:"formatted"`
}

// Run classifies the alert list payload. When ignoreDismissed is set,
// alerts already dismissed in the appliance UI are skipped entirely.
func Run(payload json.RawMessage, ignoreDismissed bool) *check.Verdict {
	var records []alertRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  fmt.Sprintf("malformed alert list: %v", err),
		}
	}

	var critical, warning []string
	for i, rec := range records {
		switch {
		case rec.Level == nil:
			return unknownField(i, "level")
		case rec.Dismissed == nil:
			return unknownField(i, "dismissed")
		case rec.Formatted == nil:
			return unknownField(i, "formatted")
		}

		if ignoreDismissed && *rec.Dismissed {
			continue
		}

		// Alert text can span multiple lines; the plugin output must not.
		text := strings.ReplaceAll(*rec.Formatted, "\n", ". ")
		switch *rec.Level {
		case "CRITICAL":
			critical = append(critical, "(C) "+text)
		case "WARNING":
			warning = append(warning, "(W) "+text)
		}
	}

	switch {
	case len(critical) > 0:
		// Critical alerts are listed first so they are never buried
		// under a long tail of warnings.
		return &check.Verdict{
			Severity: check.SeverityCritical,
			Message:  strings.Join(append(critical, warning...), " - "),
		}
	case len(warning) > 0:
		return &check.Verdict{
			Severity: check.SeverityWarning,
			Message:  strings.Join(warning, " - "),
		}
	default:
		return &check.Verdict{
			Severity: check.SeverityOK,
			Message:  "No problem alerts",
		}
	}
}

func unknownField(index int, field string) *check.Verdict {
	return &check.Verdict{
		Severity: check.SeverityUnknown,
		Message:  fmt.Sprintf("malformed alert list: alert %d is missing field %q", index, field),
	}
}
