// Package pool classifies zpool health.
package pool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
)

// Name is the check type name on the command line.
const Name = "zpool"

// Resource is the API resource queried by this check.
const Resource = "pool"

// AllPools is the filter sentinel that matches every pool. It is compared
// case-insensitively; specific pool names are matched exactly.
const AllPools = "all"

type poolRecord struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// Run classifies the pool list payload against the requested pool filter.
// Any pool whose status is not ONLINE is critical. A named filter that
// matches no existing pool is critical too, since it usually means a typo
// or a pool that has been removed.
func Run(payload json.RawMessage, poolName string) *check.Verdict {
	var records []poolRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  fmt.Sprintf("malformed pool list: %v", err),
		}
	}

	wantAll := strings.EqualFold(poolName, AllPools)

	var examined, allNames, problems []string
	for i, rec := range records {
		switch {
		case rec.Name == nil:
			return unknownField(i, "name")
		case rec.Status == nil:
			return unknownField(i, "status")
		}

		allNames = append(allNames, *rec.Name)
		if !wantAll && *rec.Name != poolName {
			continue
		}

		examined = append(examined, *rec.Name)
		if *rec.Status != "ONLINE" {
			problems = append(problems, fmt.Sprintf("(C) Pool %s is %s", *rec.Name, *rec.Status))
		}
	}

	// A named filter that matched nothing must be loud; checking every pool
	// on a system that has none is fine.
	if len(examined) == 0 && !wantAll && len(problems) == 0 {
		problems = append(problems, fmt.Sprintf("No pools found matching %s out of %d pools (%s)",
			poolName, len(records), strings.Join(allNames, " ")))
	}

	if len(problems) > 0 {
		return &check.Verdict{
			Severity: check.SeverityCritical,
			Message:  strings.Join(problems, " - "),
		}
	}

	examinedList := strings.Join(examined, " ")
	if len(examined) == 0 {
		examinedList = "(none - no pools found)"
	}
	return &check.Verdict{
		Severity: check.SeverityOK,
		Message:  "No problem pools. Pools examined: " + examinedList,
	}
}

func unknownField(index int, field string) *check.Verdict {
	return &check.Verdict{
		Severity: check.SeverityUnknown,
		Message:  fmt.Sprintf("malformed pool list: pool %d is missing field %q", index, field),
	}
}
