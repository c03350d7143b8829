package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/internal/configs"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/auth"
	"github.com/sliceline/pizzeria/pkg/database"
	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/sliceline/pizzeria/pkg/repositories"
	"go.uber.org/zap"
)

// main seeds a bootstrap staff user so a fresh deployment has someone who
// can manage orders. Signup accepts is_staff too; this just avoids relying
// on the public surface for the first privileged account.
func main() {
	username := flag.String("username", "admin", "Staff username")
	email := flag.String("email", "admin@example.com", "Staff email")
	password := flag.String("password", "", "Staff password (required)")
	firstName := flag.String("firstName", "Admin", "Staff first name")
	lastName := flag.String("lastName", "User", "Staff last name")
	flag.Parse()

	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	if *password == "" {
		logger.Fatal("password flag is required")
	}

	cfg, err := configs.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, disconnect, err := database.New(ctx, logger, database.Config{
		Addr:     cfg.DbAddr,
		MaxConns: cfg.MaxDbCons,
		MinConns: cfg.MinDbCons,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer disconnect()

	if err := database.RunMigrations(logger, cfg.DbAddr); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repositories.NewUserRepository(db)

	exists, err := users.ExistsByUsername(ctx, *username)
	if err != nil {
		logger.Fatal("failed to check username", zap.Error(err))
	}
	if exists {
		logger.Info("staff user already exists", zap.String("username", *username))
		return
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	var created models.User
	err = db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		created, txErr = users.Create(ctx, tx, models.User{
			Username:  *username,
			Email:     *email,
			FirstName: *firstName,
			LastName:  *lastName,
			Password:  hash,
			IsStaff:   true,
			IsActive:  true,
		})
		return txErr
	})
	if err != nil {
		logger.Fatal("failed to create staff user", zap.Error(err))
	}

	logger.Info("staff user created",
		zap.Int64("userId", created.ID),
		zap.String("username", created.Username),
	)
}
