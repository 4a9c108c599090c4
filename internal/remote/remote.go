// Package remote publishes treesum manifests to OCI registries.
//
// A manifest is pushed as a single zstd layer on an image whose config
// labels carry the tree's root digest. Any registry that speaks the
// OCI distribution spec works; auth comes from the system keychain
// (like Docker) unless overridden.
package remote

// Authenticator provides credentials for registry operations.
type Authenticator interface {
	// Authenticate returns credentials for the given registry. Empty
	// username means fall back to the system keychain.
	Authenticate(registry string) (username, password string, err error)
}

// BasicAuthenticator returns fixed credentials for every registry.
type BasicAuthenticator struct {
	Username string
	Password string
}

func (a *BasicAuthenticator) Authenticate(string) (string, string, error) {
	return a.Username, a.Password, nil
}
