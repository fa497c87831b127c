package ports

import "context"

// PlatformProfile is the identity provider's view of a user.
type PlatformProfile struct {
	ID    string
	Name  string
	Email string
}

// IdentityProvider is the outbound port for the messaging platform's OAuth
// exchange and profile lookup (Facebook Graph in production).
type IdentityProvider interface {
	// ExchangeCode trades an OAuth authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchProfile resolves the token holder's id, name and email.
	FetchProfile(ctx context.Context, accessToken string) (*PlatformProfile, error)
	// LoginURL builds the provider's authorization URL.
	LoginURL() string
}
