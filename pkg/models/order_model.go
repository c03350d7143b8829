package models

import (
	"time"

	"github.com/sliceline/pizzeria/pkg"
)

// Order maps to table `orders`. Every order belongs to exactly one user.
type Order struct {
	ID        int64
	Quantity  int
	Status    pkg.OrderStatus
	PizzaSize pkg.PizzaSize
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
