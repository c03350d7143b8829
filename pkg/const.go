package pkg

const (
	HeaderTraceId       string = "X-Trace-Id"
	HeaderAuthorization string = "Authorization"
)

const (
	TraceId     string = "trace_id"
	CurrentUser string = "current_user"
)

// OrderStatus is the closed set of states an order can be in. Staff may set
// any status from any current status; no transition graph is enforced.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a member of the closed enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PizzaSize is the closed set of pizza sizes.
type PizzaSize string

const (
	PizzaSizeSmall      PizzaSize = "small"
	PizzaSizeMedium     PizzaSize = "medium"
	PizzaSizeLarge      PizzaSize = "large"
	PizzaSizeExtraLarge PizzaSize = "extra_large"
)

// Valid reports whether s is a member of the closed enumeration.
func (s PizzaSize) Valid() bool {
	switch s {
	case PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge, PizzaSizeExtraLarge:
		return true
	}
	return false
}
