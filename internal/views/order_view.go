package views

import (
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/models"
)

// OrderRequest is the payload for placing or updating an order. There is no
// status or owner field on purpose: status is forced to pending on create and
// ownership always follows the authenticated caller.
type OrderRequest struct {
	Quantity  int           `json:"quantity" binding:"required,min=1"`
	PizzaSize pkg.PizzaSize `json:"pizza_size" binding:"omitempty,oneof=small medium large extra_large"`
}

// StatusUpdateRequest carries the new status on PUT /staff/:id when the
// client sends it in the body instead of the order_status query parameter.
type StatusUpdateRequest struct {
	OrderStatus pkg.OrderStatus `json:"order_status"`
}

// OrderView is the public shape of an order.
type OrderView struct {
	ID        int64           `json:"id"`
	Quantity  int             `json:"quantity"`
	Status    pkg.OrderStatus `json:"order_status"`
	PizzaSize pkg.PizzaSize   `json:"pizza_size"`
	UserID    int64           `json:"user_id"`
}

func NewOrderView(o models.Order) OrderView {
	return OrderView{
		ID:        o.ID,
		Quantity:  o.Quantity,
		Status:    o.Status,
		PizzaSize: o.PizzaSize,
		UserID:    o.UserID,
	}
}

func NewOrderViews(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderView(o))
	}
	return out
}

// OrderCreatedResponse is the body of POST /order/.
type OrderCreatedResponse struct {
	Message string    `json:"message"`
	Order   OrderView `json:"order"`
}

// OrderResponse is the body of single-order reads and updates.
type OrderResponse struct {
	Status string    `json:"status"`
	Order  OrderView `json:"order"`
}

// OrdersResponse is the body of order listings.
type OrdersResponse struct {
	Status string      `json:"status"`
	Orders []OrderView `json:"orders"`
}

// MessageResponse is the success-with-message shape used when a listing is
// empty or an owner-scoped lookup finds nothing.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusUpdateResponse is the body of PUT /staff/:id.
type StatusUpdateResponse struct {
	Status    string          `json:"status"`
	OrderID   int64           `json:"order_id"`
	NewStatus pkg.OrderStatus `json:"new_status"`
}
