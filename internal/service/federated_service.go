package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/auth"
	"spendtrack/internal/model"
	"spendtrack/internal/oauth"
	"spendtrack/internal/repository"
)

// ErrUnknownProvider is returned when a login names a provider that is not
// registered.
var ErrUnknownProvider = errors.New("unknown oauth provider")

// FederatedService reconciles external identity assertions into local
// accounts and hands the caller a bearer token via redirect.
type FederatedService interface {
	// LoginURL issues a state nonce and returns the provider consent URL.
	LoginURL(ctx context.Context, provider string) (string, error)
	// HandleCallback consumes a provider callback and returns the frontend
	// redirect URL carrying the issued token.
	HandleCallback(ctx context.Context, provider, state, code string) (string, error)
}

type federatedService struct {
	providers         map[string]oauth.Provider
	users             repository.UserRepository
	jwtService        *auth.JWTService
	states            auth.StateStoreInterface
	frontendURL       string
	placeholderDomain string
}

// NewFederatedService creates the federated login bridge.
func NewFederatedService(
	providers map[string]oauth.Provider,
	users repository.UserRepository,
	jwtService *auth.JWTService,
	states auth.StateStoreInterface,
	frontendURL string,
	placeholderDomain string,
) FederatedService {
	return &federatedService{
		providers:         providers,
		users:             users,
		jwtService:        jwtService,
		states:            states,
		frontendURL:       frontendURL,
		placeholderDomain: placeholderDomain,
	}
}

func (s *federatedService) LoginURL(ctx context.Context, provider string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	state, err := s.states.Issue(ctx, provider)
	if err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}
	return p.AuthCodeURL(state), nil
}

func (s *federatedService) HandleCallback(ctx context.Context, provider, state, code string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}

	issuedFor, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", err
	}
	if issuedFor != provider {
		return "", auth.ErrUnknownState
	}

	identity, err := p.FetchIdentity(ctx, code)
	if err != nil {
		return "", err
	}

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return "", err
	}

	token, err := s.jwtService.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	// The token travels exclusively through this redirect URL.
	return s.frontendURL + "?token=" + url.QueryEscape(token), nil
}

// resolveUser finds or creates the local account for a federated identity.
// Two concurrent first logins for the same new email race on the insert; the
// loser hits the unique-email constraint and re-resolves to the winning row,
// so both callers converge on one account.
func (s *federatedService) resolveUser(ctx context.Context, identity *oauth.Identity) (*model.User, error) {
	email := identity.Email
	if email == "" {
		// The provider withheld the address; synthesize a deterministic
		// placeholder from the stable login handle.
		email = identity.Login + "@" + s.placeholderDomain
	}

	for attempt := 0; attempt < 2; attempt++ {
		user, err := s.users.FindByEmail(ctx, email)
		if err == nil {
			// Existing accounts are reused untouched; federated login never
			// overwrites name or password.
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}

		newUser, err := s.newFederatedUser(identity, email)
		if err != nil {
			return nil, err
		}
		err = s.users.Create(ctx, newUser)
		if err == nil {
			return newUser, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		// Lost the insert race; loop re-queries for the winning row.
	}

	return nil, fmt.Errorf("resolve federated user %s: conflict persisted", email)
}

// newFederatedUser builds a federated-login-only account. The password hash
// is a bcrypt of a random UUID so the non-null invariant holds while the
// credential stays unguessable; it is never meant to be typed by a human.
func (s *federatedService) newFederatedUser(identity *oauth.Identity, email string) (*model.User, error) {
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	name := identity.Name
	if name == "" {
		name = identity.Login
	}

	return &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(placeholder),
	}, nil
}
