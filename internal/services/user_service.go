package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/auth"
	"github.com/sliceline/pizzeria/pkg/database"
	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/sliceline/pizzeria/pkg/repositories"
	"go.uber.org/zap"
)

// UserService implements signup, login and profile management.
type UserService interface {
	SignUp(ctx context.Context, traceID string, req views.SignUpRequest) (models.User, error)
	Login(ctx context.Context, traceID string, req views.LoginRequest) (models.User, string, error)
	// Profile returns the user's record together with their orders.
	Profile(ctx context.Context, traceID string, user models.User) ([]models.Order, error)
	UpdateProfile(ctx context.Context, traceID string, userID int64, req views.UpdateUserRequest) (models.User, error)
}

type UserServiceImpl struct {
	logger *zap.Logger
	db     *database.DB
	users  repositories.UserRepository
	orders repositories.OrderRepository
	auth   AuthService
}

func NewUserService(logger *zap.Logger, db *database.DB, users repositories.UserRepository,
	orders repositories.OrderRepository, auth AuthService) UserService {
	return &UserServiceImpl{logger: logger, db: db, users: users, orders: orders, auth: auth}
}

// SignUp pre-checks both unique columns so callers get a targeted message;
// a concurrent duplicate slipping past the pre-check still hits the unique
// constraint and comes back as a conflict from HandleSQLError.
func (s *UserServiceImpl) SignUp(ctx context.Context, traceID string, req views.SignUpRequest) (models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, pkg.HandleSQLError(traceID, s.logger, err)
	}
	if exists {
		return models.User{}, pkg.NewAppError(pkg.ErrInvalidInputCode,
			fmt.Sprintf("User with email %s already exists", req.Email), nil)
	}

	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return models.User{}, pkg.HandleSQLError(traceID, s.logger, err)
	}
	if exists {
		return models.User{}, pkg.NewAppError(pkg.ErrInvalidInputCode,
			fmt.Sprintf("User with username %s already exists", req.Username), nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, pkg.NewAppError(pkg.ErrServerCode, "failed to hash password", err)
	}

	var created models.User
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		created, txErr = s.users.Create(ctx, tx, models.User{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  hash,
			IsStaff:   req.IsStaff,
			IsActive:  req.IsActive,
		})
		return txErr
	})
	if err != nil {
		return models.User{}, pkg.HandleSQLError(traceID, s.logger, err)
	}

	s.logger.Info("user created",
		zap.String(pkg.TraceId, traceID),
		zap.Int64("userId", created.ID),
		zap.String("username", created.Username),
	)
	return created, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, traceID string, req views.LoginRequest) (models.User, string, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", err)
		}
		return models.User{}, "", pkg.HandleSQLError(traceID, s.logger, err)
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return models.User{}, "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", nil)
	}

	token, err := s.auth.IssueToken(ctx, traceID, req.Username, req.Password)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *UserServiceImpl) Profile(ctx context.Context, traceID string, user models.User) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return orders, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, traceID string, userID int64, req views.UpdateUserRequest) (models.User, error) {
	var updated models.User
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.users.Update(ctx, tx, models.User{
			ID:        userID,
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		return txErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The authenticated user's row no longer exists.
			return models.User{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "User not found", err)
		}
		return models.User{}, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return updated, nil
}
