package checks

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Cosmits/check-truenas-extended-play/internal/check"
	"github.com/Cosmits/check-truenas-extended-play/internal/truenas"
)

// fakeTransport records the single request made through it.
type fakeTransport struct {
	payload  json.RawMessage
	err      error
	calls    int
	method   truenas.Method
	resource string
}

func (f *fakeTransport) Do(ctx context.Context, method truenas.Method, resource string) (json.RawMessage, error) {
	f.calls++
	f.method = method
	f.resource = resource
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestRunUnknownCategory(t *testing.T) {
	transport := &fakeTransport{}
	result := Run(context.Background(), transport, Request{Category: "bogus"})
	if result.Severity != check.SeverityUnknown {
		t.Errorf("expected severity %q, got %q", check.SeverityUnknown, result.Severity)
	}
	if !strings.Contains(result.Message, "bogus") {
		t.Errorf("expected category in message, got: %s", result.Message)
	}
	if transport.calls != 0 {
		t.Errorf("unknown category must not reach the transport, got %d calls", transport.calls)
	}
}

func TestRunTransportFailure(t *testing.T) {
	transport := &fakeTransport{
		err: &truenas.RequestError{URL: "https://nas/api/v2.0/pool/", Status: "401 Unauthorized"},
	}
	result := Run(context.Background(), transport, Request{Category: "zpool", PoolName: "all"})
	if result.Severity != check.SeverityUnknown {
		t.Errorf("transport failures must be UNKNOWN, got %q", result.Severity)
	}
	if !strings.Contains(result.Message, "request failed") {
		t.Errorf("expected failure detail, got: %s", result.Message)
	}
	if code := result.Severity.ExitCode(); code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
}

func TestRunRouting(t *testing.T) {
	tests := []struct {
		category string
		payload  string
		method   truenas.Method
		resource string
		expected check.Severity
	}{
		{"alerts", `[]`, truenas.MethodGet, "alert/list", check.SeverityOK},
		{"zpool", `[{"name": "tank", "status": "ONLINE"}]`, truenas.MethodGet, "pool", check.SeverityOK},
		{"repl", `[{"name": "r1", "state": {"state": "FINISHED"}}]`, truenas.MethodGet, "replication", check.SeverityOK},
		{"update", `{"status": "UNAVAILABLE"}`, truenas.MethodPost, "update/check_available", check.SeverityOK},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			transport := &fakeTransport{payload: json.RawMessage(tt.payload)}
			result := Run(context.Background(), transport, Request{Category: tt.category, PoolName: "all"})
			if transport.calls != 1 {
				t.Fatalf("expected exactly one request, got %d", transport.calls)
			}
			if transport.method != tt.method {
				t.Errorf("expected method %v, got %v", tt.method, transport.method)
			}
			if transport.resource != tt.resource {
				t.Errorf("expected resource %q, got %q", tt.resource, transport.resource)
			}
			if result.Severity != tt.expected {
				t.Errorf("expected severity %q, got %q", tt.expected, result.Severity)
			}
		})
	}
}

func TestRunPassesOptionsThrough(t *testing.T) {
	dismissed := `[{"level": "CRITICAL", "dismissed": true, "formatted": "old alert"}]`
	transport := &fakeTransport{payload: json.RawMessage(dismissed)}

	result := Run(context.Background(), transport, Request{Category: "alerts", IgnoreDismissed: true})
	if result.Severity != check.SeverityOK {
		t.Errorf("expected dismissed alert to be skipped, got %q", result.Severity)
	}

	result = Run(context.Background(), transport, Request{Category: "alerts"})
	if result.Severity != check.SeverityCritical {
		t.Errorf("expected dismissed alert to count, got %q", result.Severity)
	}
}

func TestRunExitCodesAlwaysValid(t *testing.T) {
	payloads := []struct {
		category string
		payload  string
	}{
		{"alerts", `[]`},
		{"alerts", `not json at all`}, // classifier sees garbage
		{"zpool", `[{"name": "tank", "status": "DEGRADED"}]`},
		{"repl", `[{"name": "r1", "state": {"state": "ERROR"}}]`},
		{"update", `{"status": "AVAILABLE"}`},
		{"nope", ``},
	}

	for _, tt := range payloads {
		transport := &fakeTransport{payload: json.RawMessage(tt.payload)}
		result := Run(context.Background(), transport, Request{Category: tt.category, PoolName: "all"})
		code := result.Severity.ExitCode()
		if code < 0 || code > 3 {
			t.Errorf("category %q: exit code %d out of range", tt.category, code)
		}
		if got := strings.Fields(result.Line())[0]; got != string(result.Severity) {
			t.Errorf("severity must be the first output token, got %q", got)
		}
	}
}

func TestTypesMatchRoutes(t *testing.T) {
	for _, name := range Types() {
		if _, ok := routes[name]; !ok {
			t.Errorf("type %q has no route", name)
		}
	}
	if len(Types()) != len(routes) {
		t.Errorf("expected %d types, got %d", len(routes), len(Types()))
	}
}
