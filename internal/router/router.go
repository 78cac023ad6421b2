package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"spendtrack/internal/auth"
	"spendtrack/internal/handler"
	"spendtrack/internal/middleware"
	"spendtrack/internal/repository"
)

// Register wires routes and middleware. The public allow-list is exactly the
// set of routes registered outside the secured group: health, swagger,
// password login/registration and the federated login round-trip.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	expenseHandler *handler.ExpenseHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/oauth/:provider/login", oauthHandler.Login)
	api.GET("/oauth/:provider/callback", oauthHandler.Callback)

	// Secured routes (require a valid bearer token for an existing user)
	secured := api.Group("", middleware.Authenticate(jwtService, userRepo))

	secured.GET("/me", userHandler.Me)
	secured.DELETE("/me", userHandler.DeleteMe)

	secured.POST("/expenses", expenseHandler.Create)
	secured.GET("/expenses", expenseHandler.List)
	secured.GET("/expenses/filter", expenseHandler.Filter)
	secured.GET("/expenses/monthly-summary", expenseHandler.MonthlySummary)
	secured.GET("/expenses/:id", expenseHandler.Get)
	secured.PUT("/expenses/:id", expenseHandler.Update)
	secured.DELETE("/expenses/:id", expenseHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
