package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "spendtrack/docs" // swagger docs

	"spendtrack/internal/auth"
	"spendtrack/internal/cache"
	"spendtrack/internal/config"
	"spendtrack/internal/db"
	"spendtrack/internal/handler"
	"spendtrack/internal/model"
	"spendtrack/internal/oauth"
	"spendtrack/internal/repository"
	"spendtrack/internal/router"
	"spendtrack/internal/service"
)

// @title Spendtrack API
// @version 1.0
// @description Per-user expense ledger with JWT authentication and GitHub federated login.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	stateStore := auth.NewStateStore(cacheClient)

	providers := map[string]oauth.Provider{}
	if cfg.GitHubClientID != "" {
		providers["github"] = oauth.NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.OAuthRedirectURL)
	} else {
		log.Println("GITHUB_CLIENT_ID not set, federated login disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	federatedService := service.NewFederatedService(
		providers,
		userRepo,
		jwtService,
		stateStore,
		cfg.FrontendURL,
		cfg.PlaceholderEmailDomain,
	)
	expenseService := service.NewExpenseService(expenseRepo)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(federatedService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		oauthHandler,
		expenseHandler,
		userHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
