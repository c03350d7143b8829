package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/auth"
	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/sliceline/pizzeria/pkg/repositories"
	"go.uber.org/zap"
)

// AuthService issues bearer tokens and resolves them back to stored users.
type AuthService interface {
	// IssueToken re-verifies the credentials against the store and returns a
	// fresh signed token on success.
	IssueToken(ctx context.Context, traceID, username, password string) (string, error)
	// ResolveUser validates the token and loads the user named by its claim.
	ResolveUser(ctx context.Context, traceID, token string) (models.User, error)
}

type AuthServiceImpl struct {
	logger *zap.Logger
	issuer *auth.TokenIssuer
	users  repositories.UserRepository
}

func NewAuthService(logger *zap.Logger, issuer *auth.TokenIssuer, users repositories.UserRepository) AuthService {
	return &AuthServiceImpl{logger: logger, issuer: issuer, users: users}
}

func (s *AuthServiceImpl) IssueToken(ctx context.Context, traceID, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", err)
		}
		return "", pkg.HandleSQLError(traceID, s.logger, err)
	}
	if !auth.CheckPassword(user.Password, password) {
		s.logger.Warn("password mismatch", zap.String(pkg.TraceId, traceID), zap.String("username", username))
		return "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", nil)
	}
	return s.issuer.Generate(user.Username)
}

func (s *AuthServiceImpl) ResolveUser(ctx context.Context, traceID, token string) (models.User, error) {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return models.User{}, pkg.NewAppError(pkg.ErrUnauthenticatedCode, "invalid or expired token", err)
	}

	user, err := s.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Token is valid but the user it names is gone.
			return models.User{}, pkg.NewAppError(pkg.ErrUnauthenticatedCode, "user no longer exists", err)
		}
		return models.User{}, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return user, nil
}
