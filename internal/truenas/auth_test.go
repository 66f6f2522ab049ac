package truenas

import "testing"

func TestResolveAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		secret   string
		expected AuthKind
	}{
		{"username present", "root", "hunter2", AuthBasic},
		{"username empty", "", "api-key-value", AuthBearer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := ResolveAuth(tt.username, tt.secret)
			if mode.Kind != tt.expected {
				t.Errorf("expected kind %v, got %v", tt.expected, mode.Kind)
			}
			if mode.Secret != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, mode.Secret)
			}
		})
	}
}

func TestResolveAuthBasicKeepsUsername(t *testing.T) {
	mode := ResolveAuth("root", "hunter2")
	if mode.Username != "root" {
		t.Errorf("expected username root, got %q", mode.Username)
	}
}

func TestResolveAuthBearerHasNoUsername(t *testing.T) {
	mode := ResolveAuth("", "api-key-value")
	if mode.Username != "" {
		t.Errorf("bearer mode must not carry a username, got %q", mode.Username)
	}
}
