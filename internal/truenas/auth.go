package truenas

// AuthKind selects how requests authenticate against the appliance.
type AuthKind int

const (
	// AuthBasic sends the username and secret as HTTP basic auth.
	AuthBasic AuthKind = iota
	// AuthBearer sends the secret as an API key in an Authorization header.
	AuthBearer
)

// AuthMode is the resolved authentication choice for a client.
type AuthMode struct {
	Kind     AuthKind
	Username string
	Secret   string
}

// ResolveAuth picks the auth mode from the supplied credentials. A non-empty
// username means basic auth; otherwise the secret is treated as an API key
// and sent as a bearer token. Exactly one mode is ever selected.
func ResolveAuth(username, secret string) AuthMode {
	if username != "" {
		return AuthMode{Kind: AuthBasic, Username: username, Secret: secret}
	}
	return AuthMode{Kind: AuthBearer, Secret: secret}
}
