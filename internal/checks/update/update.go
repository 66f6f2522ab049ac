// Package update classifies the pending-update status.
package update

import (
	"encoding/json"
	"fmt"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
)

// Name is the check type name on the command line.
const Name = "update"

// Resource is the API resource queried by this check. Checking for updates
// is modeled as an action by the API, so this one is a POST.
const Resource = "update/check_available"

// Statuses documented at https://www.truenas.com/docs/api/rest.html
var statusDescriptions = map[string]string{
	"UNAVAILABLE":     "no update available",
	"AVAILABLE":       "an update is available",
	"REBOOT_REQUIRED": "an update has already been applied",
	"HA_UNAVAILABLE":  "HA is non-functional",
}

type updateResponse struct {
	Status *string `json:"status"`
}

// Run classifies the update-check response. Only UNAVAILABLE is OK; every
// other status, including ones this tool has never seen, is a WARNING. A
// pending update is never treated as urgent.
func Run(payload json.RawMessage) *check.Verdict {
	var resp updateResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  fmt.Sprintf("malformed update status: %v", err),
		}
	}
	if resp.Status == nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  `malformed update status: missing field "status"`,
		}
	}

	status := *resp.Status
	if status == "UNAVAILABLE" {
		return &check.Verdict{
			Severity: check.SeverityOK,
			Message:  fmt.Sprintf("Update status: %s (%s)", status, statusDescriptions[status]),
		}
	}

	desc, known := statusDescriptions[status]
	msg := fmt.Sprintf("Unknown update status: %s.", status)
	if known {
		msg = fmt.Sprintf("Update status: %s (%s).", status, desc)
	}
	return &check.Verdict{
		Severity: check.SeverityWarning,
		Message:  msg + " Update may be required. Go to System > Update to check for a newer version.",
	}
}
