// Package checks routes a requested check type to its classifier.
package checks

import (
	"context"
	"encoding/json"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
	"github.com/Cosmits/check-truenas-extended-play/internal/checks/alerts"
	"github.com/Cosmits/check-truenas-extended-play/internal/checks/pool"
	"github.com/Cosmits/check-truenas-extended-play/internal/checks/replication"
	"github.com/Cosmits/check-truenas-extended-play/internal/checks/update"
	"github.com/Cosmits/check-truenas-extended-play/internal/truenas"
)

// Request selects and configures a single check run.
type Request struct {
	Category        string // one of Types
	PoolName        string // zpool check only; "all" matches every pool
	IgnoreDismissed bool   // alerts check only
}

// Transport is the one capability the dispatcher needs from the API client.
type Transport interface {
	Do(ctx context.Context, method truenas.Method, resource string) (json.RawMessage, error)
}

type route struct {
	resource string
	method   truenas.Method
	classify func(req Request, payload json.RawMessage) *check.Verdict
}

var routes = map[string]route{
	alerts.Name: {
		resource: alerts.Resource,
		method:   truenas.MethodGet,
		classify: func(req Request, payload json.RawMessage) *check.Verdict {
			return alerts.Run(payload, req.IgnoreDismissed)
		},
	},
	pool.Name: {
		resource: pool.Resource,
		method:   truenas.MethodGet,
		classify: func(req Request, payload json.RawMessage) *check.Verdict {
			return pool.Run(payload, req.PoolName)
		},
	},
	replication.Name: {
		resource: replication.Resource,
		method:   truenas.MethodGet,
		classify: func(req Request, payload json.RawMessage) *check.Verdict {
			return replication.Run(payload)
		},
	},
	update.Name: {
		resource: update.Resource,
		method:   truenas.MethodPost,
		classify: func(req Request, payload json.RawMessage) *check.Verdict {
			return update.Run(payload)
		},
	},
}

// Types lists the supported check type names.
func Types() []string {
	return []string{alerts.Name, pool.Name, replication.Name, update.Name}
}

// Run performs the request's check against the appliance and reduces the
// response to a single verdict. An unrecognized check type and any transport
// failure both collapse to UNKNOWN; neither is ever reported partially.
func Run(ctx context.Context, transport Transport, req Request) *check.Verdict {
	r, ok := routes[req.Category]
	if !ok {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  "unknown check type: " + req.Category,
		}
	}

	payload, err := transport.Do(ctx, r.method, r.resource)
	if err != nil {
		return &check.Verdict{
			Severity: check.SeverityUnknown,
			Message:  "request failed: " + err.Error(),
		}
	}

	return r.classify(req, payload)
}
