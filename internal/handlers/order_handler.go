package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/internal/services"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	middleware "github.com/sliceline/pizzeria/pkg/middlewares"
	"go.uber.org/zap"
)

type OrderHandler struct {
	logger *zap.Logger
	orders services.OrderService
}

func NewOrderHandler(logger *zap.Logger, orders services.OrderService) *OrderHandler {
	return &OrderHandler{logger: logger, orders: orders}
}

// RegisterRoutes registers the owner-scoped /order routes; all of them
// require a bearer token.
func (h *OrderHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc) {
	grp := r.Group("/order", authenticate)
	grp.POST("/", h.PlaceOrder)
	grp.GET("/", h.ListOrders)
	grp.GET("/:id/", h.GetOrder)
	grp.PUT("/:id", h.UpdateOrder)
	grp.DELETE("/:id", h.DeleteOrder)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	var req views.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(resp.Status, resp)
		return
	}

	order, err := h.orders.Place(c.Request.Context(), traceID, user.ID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusCreated, views.OrderCreatedResponse{
		Message: "Order placed successfully",
		Order:   views.NewOrderView(order),
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	orders, err := h.orders.ListForUser(c.Request.Context(), traceID, user.ID)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	if len(orders) == 0 {
		c.JSON(http.StatusOK, views.MessageResponse{Status: "success", Message: "No orders found."})
		return
	}
	c.JSON(http.StatusOK, views.OrdersResponse{Status: "success", Orders: views.NewOrderViews(orders)})
}

// GetOrder answers a missing or foreign order with a success-plus-message
// body rather than a 404. See DESIGN.md; this mirrors the documented contract.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	order, found, err := h.orders.GetForUser(c.Request.Context(), traceID, id, user.ID)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}
	if !found {
		c.JSON(http.StatusOK, views.MessageResponse{Status: "success", Message: "Order not found"})
		return
	}

	c.JSON(http.StatusOK, views.OrderResponse{Status: "success", Order: views.NewOrderView(order)})
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	var req views.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(resp.Status, resp)
		return
	}

	order, found, err := h.orders.UpdateForUser(c.Request.Context(), traceID, id, user.ID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}
	if !found {
		c.JSON(http.StatusOK, views.MessageResponse{Status: "success", Message: "Order not found"})
		return
	}

	c.JSON(http.StatusOK, views.OrderResponse{Status: "success", Order: views.NewOrderView(order)})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.orders.DeleteForUser(c.Request.Context(), traceID, id, user.ID); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.Status(http.StatusNoContent)
}

func orderID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid order id", err)
	}
	return id, nil
}
