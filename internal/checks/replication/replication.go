// Package replication classifies replication task health.
package replication

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
)

// Name is the check type name on the command line.
const Name = "repl"

// Resource is the API resource queried by this check.
const Resource = "replication"

type replicationRecord struct {
	Name  *string `json:"name"`
	State *struct {
		State *string `json:"state"`
	} `json:"state"`
}

// Run classifies the replication task list. A task is healthy when its state
// is FINISHED or still RUNNING; anything else counts as an error. Errors are
// only ever WARNING, not CRITICAL.
func Run(payload json.RawMessage) *check.Verdict {
	var records []replicationRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  fmt.Sprintf("malformed replication list: %v", err),
		}
	}

	var examined, problems []string
	for i, rec := range records {
		switch {
		case rec.Name == nil:
			return unknownField(i, "name")
		case rec.State == nil:
			return unknownField(i, "state")
		case rec.State.State == nil:
			return unknownField(i, "state.state")
		}

		state := *rec.State.State
		examined = append(examined, *rec.Name+": "+state)
		if state != "FINISHED" && state != "RUNNING" {
			problems = append(problems, *rec.Name+": "+state)
		}
	}

	if len(problems) > 0 {
		return &check.Verdict{
			Severity: check.SeverityWarning,
			Message: fmt.Sprintf("There are %d replication errors [%s]. Check Storage > Replication Tasks for details.",
				len(problems), strings.Join(problems, " ")),
		}
	}

	return &check.Verdict{
		Severity: check.SeverityOK,
		Message:  "No replication errors. Replications examined: " + strings.Join(examined, " "),
	}
}

func unknownField(index int, field string) *check.Verdict {
	return &check.Verdict{
		Severity: check.SeverityUnknown,
		Message:  fmt.Sprintf("malformed replication list: task %d is missing field %q", index, field),
	}
}
