package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/internal/services"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	middleware "github.com/sliceline/pizzeria/pkg/middlewares"
	"go.uber.org/zap"
)

type UserHandler struct {
	logger *zap.Logger
	users  services.UserService
}

func NewUserHandler(logger *zap.Logger, users services.UserService) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// RegisterRoutes registers the /user routes. Signup and login are public;
// profile reads and updates require a bearer token.
func (h *UserHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc) {
	grp := r.Group("/user")
	grp.POST("/signup", h.SignUp)
	grp.POST("/login", h.Login)
	grp.GET("/me", authenticate, h.GetMe)
	grp.PUT("/", authenticate, h.UpdateMe)
}

func (h *UserHandler) SignUp(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	var req views.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(resp.Status, resp)
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), traceID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusCreated, views.SignUpResponse{
		Message: "User created successfully",
		User:    views.NewUserView(user),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	var req views.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(resp.Status, resp)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), traceID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, views.LoginResponse{
		Status: "success",
		User:   views.NewUserView(user),
		Token:  token,
	})
}

// GetMe returns the caller's profile with their orders; the orders key is
// omitted when there are none.
func (h *UserHandler) GetMe(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	orders, err := h.users.Profile(c.Request.Context(), traceID, user)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, views.ProfileResponse{
		Status: "success",
		User:   views.NewUserView(user),
		Orders: views.NewOrderViews(orders),
	})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	var req views.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(resp.Status, resp)
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), traceID, user.ID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, views.UpdateUserResponse{
		Status: "success",
		User:   views.NewUserView(updated),
	})
}
