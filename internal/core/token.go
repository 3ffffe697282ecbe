package core

// OfflineToken is an optional offline credential. The zero value means
// no token was supplied and no exchange should happen.
type OfflineToken struct {
	value string
	set   bool
}

// NewOfflineToken returns a present token holding v.
func NewOfflineToken(v string) OfflineToken {
	return OfflineToken{value: v, set: true}
}

// NoOfflineToken returns an absent token.
func NoOfflineToken() OfflineToken {
	return OfflineToken{}
}

// Get returns the token and whether one is present.
func (t OfflineToken) Get() (string, bool) {
	return t.value, t.set
}

// String never reveals the credential.
func (t OfflineToken) String() string {
	if !t.set {
		return "<none>"
	}
	return "<redacted>"
}
