package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/internal/configs"
	"github.com/sliceline/pizzeria/internal/handlers"
	"github.com/sliceline/pizzeria/internal/services"
	"github.com/sliceline/pizzeria/pkg/auth"
	"github.com/sliceline/pizzeria/pkg/database"
	middleware "github.com/sliceline/pizzeria/pkg/middlewares"
	"github.com/sliceline/pizzeria/pkg/repositories"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	db, disconnect, err := database.New(ctx, logger, database.Config{
		Addr:     cfg.DbAddr,
		MaxConns: cfg.MaxDbCons,
		MinConns: cfg.MinDbCons,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(logger, cfg.DbAddr); err != nil {
		disconnect()
		return nil, nil, err
	}

	// Repositories and services
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	issuer := auth.NewTokenIssuer(cfg.JwtSecret, cfg.TokenTTL())
	authService := services.NewAuthService(logger, issuer, userRepo)
	userService := services.NewUserService(logger, db, userRepo, orderRepo, authService)
	orderService := services.NewOrderService(logger, db, orderRepo)

	// Handlers
	baseHandler := handlers.NewBaseHandler(logger)
	authHandler := handlers.NewAuthHandler(logger, authService)
	userHandler := handlers.NewUserHandler(logger, userService)
	orderHandler := handlers.NewOrderHandler(logger, orderService)
	staffHandler := handlers.NewStaffHandler(logger, orderService)

	// Router
	r := gin.Default()
	r.Use(middleware.TraceID())
	r.Use(middleware.Metrics())

	authenticate := middleware.Authenticate(logger, authService)

	baseHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r, authenticate)
	orderHandler.RegisterRoutes(r, authenticate)
	staffHandler.RegisterRoutes(r, authenticate)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		disconnect()
	}
	return srv, cleanup, nil
}
