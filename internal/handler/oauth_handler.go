package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spendtrack/internal/errors"
	"spendtrack/internal/service"
)

// OAuthHandler handles the federated login endpoints.
type OAuthHandler struct {
	federatedService service.FederatedService
}

// NewOAuthHandler creates a new oauth handler.
func NewOAuthHandler(federatedService service.FederatedService) *OAuthHandler {
	return &OAuthHandler{federatedService: federatedService}
}

// Login godoc
// @Summary Start a federated login
// @Description Redirects the browser to the identity provider's consent page.
// @Tags oauth
// @Param provider path string true "Provider name" Enums(github)
// @Success 302
// @Failure 404 {object} errors.ErrorResponse
// @Router /oauth/{provider}/login [get]
func (h *OAuthHandler) Login(c echo.Context) error {
	url, err := h.federatedService.LoginURL(c.Request().Context(), c.Param("provider"))
	if err != nil {
		if err == service.ErrUnknownProvider {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "UNKNOWN_PROVIDER",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to start login",
			Code:  "OAUTH_LOGIN_FAILED",
		})
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback godoc
// @Summary Complete a federated login
// @Description Exchanges the provider callback for a local account and
// @Description redirects to the frontend with ?token=<jwt> appended. The
// @Description token is delivered exclusively through this redirect.
// @Tags oauth
// @Param provider path string true "Provider name" Enums(github)
// @Param state query string true "Anti-forgery state nonce"
// @Param code query string true "Authorization code"
// @Success 302
// @Failure 401 {object} errors.ErrorResponse
// @Router /oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	redirectURL, err := h.federatedService.HandleCallback(
		c.Request().Context(),
		c.Param("provider"),
		c.QueryParam("state"),
		c.QueryParam("code"),
	)
	if err != nil {
		// Upstream assertion failures all collapse to one rejection.
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "federated login failed",
			Code:  "OAUTH_CALLBACK_FAILED",
		})
	}
	return c.Redirect(http.StatusFound, redirectURL)
}
