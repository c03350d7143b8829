package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/internal/services"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	"go.uber.org/zap"
)

type AuthHandler struct {
	logger *zap.Logger
	auth   services.AuthService
}

func NewAuthHandler(logger *zap.Logger, auth services.AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	grp := r.Group("/auth")
	grp.POST("/token", h.GenerateToken)
}

// GenerateToken handles POST /auth/token. Credentials arrive as form fields
// (OAuth2 password flow shape); a fresh bearer token is returned with 201.
func (h *AuthHandler) GenerateToken(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.auth.IssueToken(c.Request.Context(), traceID, username, password)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusCreated, views.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
