package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/sliceline/pizzeria/pkg/utils"
	"go.uber.org/zap"
)

// UserResolver turns a bearer token into the stored user it belongs to.
type UserResolver interface {
	ResolveUser(ctx context.Context, traceID, token string) (models.User, error)
}

// Authenticate returns Gin middleware that requires a valid bearer token and
// places the resolved user in the request context. Missing, malformed,
// expired and orphaned tokens all abort with 401.
func Authenticate(logger *zap.Logger, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetString(pkg.TraceId)

		token, err := bearerToken(c)
		if err != nil {
			resp := pkg.ToErrorResponse(logger, traceID,
				pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", err))
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		user, err := resolver.ResolveUser(c.Request.Context(), traceID, token)
		if err != nil {
			resp := pkg.ToErrorResponse(logger, traceID, err)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(pkg.CurrentUser, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(pkg.CurrentUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(pkg.HeaderAuthorization)
	if utils.IsEmpty(header) {
		return "", errors.New("authorization header missing")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header is not a bearer token")
	}
	return parts[1], nil
}
