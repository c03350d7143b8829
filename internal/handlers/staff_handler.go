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

// StaffHandler exposes system-wide order administration. The is_staff gate
// is checked per handler because the read paths answer 403 while the write
// paths answer 401.
type StaffHandler struct {
	logger *zap.Logger
	orders services.OrderService
}

func NewStaffHandler(logger *zap.Logger, orders services.OrderService) *StaffHandler {
	return &StaffHandler{logger: logger, orders: orders}
}

func (h *StaffHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc) {
	grp := r.Group("/staff", authenticate)
	grp.GET("/", h.ListAllOrders)
	grp.GET("/:id", h.GetAnyOrder)
	grp.PUT("/:id", h.UpdateOrderStatus)
	grp.DELETE("/:id", h.DeleteAnyOrder)
}

func (h *StaffHandler) ListAllOrders(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}
	if !user.IsStaff {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrForbiddenCode, "Access forbidden. User is not a staff member.", nil))
		c.JSON(resp.Status, resp)
		return
	}

	orders, err := h.orders.ListAll(c.Request.Context(), traceID)
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

func (h *StaffHandler) GetAnyOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}
	if !user.IsStaff {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrForbiddenCode, "Access forbidden. User is not a staff member.", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	order, err := h.orders.Get(c.Request.Context(), traceID, id)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, views.OrderResponse{Status: "success", Order: views.NewOrderView(order)})
}

// UpdateOrderStatus accepts the new status either as an order_status query
// parameter or as a JSON body field, and answers 201 with the order id and
// the status now in effect.
func (h *StaffHandler) UpdateOrderStatus(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}
	if !user.IsStaff {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrNotStaffCode, "User is not authorized to perform this action", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	status := pkg.OrderStatus(c.Query("order_status"))
	if status == "" {
		var req views.StatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			status = req.OrderStatus
		}
	}

	order, err := h.orders.SetStatus(c.Request.Context(), traceID, id, status)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusCreated, views.StatusUpdateResponse{
		Status:    "success",
		OrderID:   order.ID,
		NewStatus: order.Status,
	})
}

func (h *StaffHandler) DeleteAnyOrder(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrUnauthenticatedCode, "not authenticated", nil))
		c.JSON(resp.Status, resp)
		return
	}
	if !user.IsStaff {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrNotStaffCode, "User is not authorized to perform this action", nil))
		c.JSON(resp.Status, resp)
		return
	}

	id, err := orderID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), traceID, id); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.Status(http.StatusNoContent)
}
