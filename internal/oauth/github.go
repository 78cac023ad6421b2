package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserAPIURL = "https://api.github.com/user"

// GitHub implements Provider against the GitHub OAuth2 endpoints.
type GitHub struct {
	config     *oauth2.Config
	userAPIURL string
}

var _ Provider = (*GitHub)(nil)

// NewGitHub builds a GitHub provider. redirectURL must match an authorized
// callback URL of the OAuth app.
func NewGitHub(clientID, clientSecret, redirectURL string) *GitHub {
	return &GitHub{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userAPIURL: githubUserAPIURL,
	}
}

// Name implements Provider.
func (g *GitHub) Name() string { return "github" }

// AuthCodeURL implements Provider.
func (g *GitHub) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// FetchIdentity exchanges the code and reads the user profile. The email
// field may be empty when the user keeps their address private; callers must
// handle that case.
func (g *GitHub) FetchIdentity(ctx context.Context, code string) (*Identity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	client := g.config.Client(ctx, token)
	resp, err := client.Get(g.userAPIURL)
	if err != nil {
		return nil, fmt.Errorf("fetch github profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github profile request returned status %d", resp.StatusCode)
	}

	var profile struct {
		Login string `json:"login"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode github profile: %w", err)
	}
	if profile.Login == "" {
		return nil, fmt.Errorf("github profile has no login")
	}

	return &Identity{
		Provider: g.Name(),
		Login:    profile.Login,
		Email:    profile.Email,
		Name:     profile.Name,
	}, nil
}
