package oauth

import "context"

// Identity carries the attributes harvested from an external identity
// provider assertion. It is used exactly once, at login time, to resolve or
// create a local account; it is never persisted as such.
type Identity struct {
	Provider string
	Login    string
	Email    string
	Name     string
}

// Provider abstracts an OAuth2 identity provider.
type Provider interface {
	// Name returns the provider's registry key, e.g. "github".
	Name() string
	// AuthCodeURL returns the provider consent page URL for the given
	// anti-forgery state nonce.
	AuthCodeURL(state string) string
	// FetchIdentity exchanges an authorization code and fetches the
	// authenticated user's profile.
	FetchIdentity(ctx context.Context, code string) (*Identity, error)
}
