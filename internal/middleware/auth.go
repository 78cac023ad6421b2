package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"spendtrack/internal/auth"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const (
	subjectContextKey   = "auth_subject"
	principalContextKey = "auth_principal"
)

// unauthenticated is the single rejection for every authentication failure.
// The reason a token failed is never disclosed to the caller.
func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

// Authenticate validates the bearer token on every request and resolves the
// token subject to a persisted user, which becomes the request principal.
// Each request is authenticated from scratch; no state survives the request.
func Authenticate(tokens *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: subjectContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			subject, err := tokens.Validate(tokenString)
			if err != nil {
				return nil, err
			}
			return subject, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated()
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(subjectContextKey).(string)
			if email == "" {
				return unauthenticated()
			}
			// A valid token for a since-deleted user must not grant access.
			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				return unauthenticated()
			}
			c.Set(principalContextKey, user)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// Principal returns the authenticated user for the request, or nil on
// unauthenticated paths.
func Principal(c echo.Context) *model.User {
	user, _ := c.Get(principalContextKey).(*model.User)
	return user
}
