package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/database"
	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/sliceline/pizzeria/pkg/repositories"
	"go.uber.org/zap"
)

// OrderService implements owner-scoped order operations plus the staff-wide
// variants. Owner-scoped reads report absence with a found flag because the
// HTTP contract answers those with a success-plus-message body, not a 404.
type OrderService interface {
	Place(ctx context.Context, traceID string, userID int64, req views.OrderRequest) (models.Order, error)
	ListForUser(ctx context.Context, traceID string, userID int64) ([]models.Order, error)
	GetForUser(ctx context.Context, traceID string, id, userID int64) (models.Order, bool, error)
	UpdateForUser(ctx context.Context, traceID string, id, userID int64, req views.OrderRequest) (models.Order, bool, error)
	DeleteForUser(ctx context.Context, traceID string, id, userID int64) error

	ListAll(ctx context.Context, traceID string) ([]models.Order, error)
	Get(ctx context.Context, traceID string, id int64) (models.Order, error)
	SetStatus(ctx context.Context, traceID string, id int64, status pkg.OrderStatus) (models.Order, error)
	Delete(ctx context.Context, traceID string, id int64) error
}

type OrderServiceImpl struct {
	logger *zap.Logger
	db     *database.DB
	orders repositories.OrderRepository
}

func NewOrderService(logger *zap.Logger, db *database.DB, orders repositories.OrderRepository) OrderService {
	return &OrderServiceImpl{logger: logger, db: db, orders: orders}
}

// Place creates an order owned by userID. Status is always pending and the
// size falls back to small; whatever the client may have sent for either is
// not consulted.
func (s *OrderServiceImpl) Place(ctx context.Context, traceID string, userID int64, req views.OrderRequest) (models.Order, error) {
	size := req.PizzaSize
	if size == "" {
		size = pkg.PizzaSizeSmall
	}

	var created models.Order
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		created, txErr = s.orders.Create(ctx, tx, models.Order{
			Quantity:  req.Quantity,
			Status:    pkg.OrderStatusPending,
			PizzaSize: size,
			UserID:    userID,
		})
		return txErr
	})
	if err != nil {
		return models.Order{}, pkg.HandleSQLError(traceID, s.logger, err)
	}

	s.logger.Info("order placed",
		zap.String(pkg.TraceId, traceID),
		zap.Int64("orderId", created.ID),
		zap.Int64("userId", userID),
		zap.Int("quantity", created.Quantity),
		zap.String("pizzaSize", string(created.PizzaSize)),
	)
	return created, nil
}

func (s *OrderServiceImpl) ListForUser(ctx context.Context, traceID string, userID int64) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) GetForUser(ctx context.Context, traceID string, id, userID int64) (models.Order, bool, error) {
	order, err := s.orders.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, false, nil
		}
		return models.Order{}, false, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return order, true, nil
}

func (s *OrderServiceImpl) UpdateForUser(ctx context.Context, traceID string, id, userID int64, req views.OrderRequest) (models.Order, bool, error) {
	size := req.PizzaSize
	if size == "" {
		size = pkg.PizzaSizeSmall
	}

	var updated models.Order
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.orders.Update(ctx, tx, models.Order{
			ID:        id,
			UserID:    userID,
			Quantity:  req.Quantity,
			PizzaSize: size,
		})
		return txErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, false, nil
		}
		return models.Order{}, false, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return updated, true, nil
}

func (s *OrderServiceImpl) DeleteForUser(ctx context.Context, traceID string, id, userID int64) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleted, err := s.orders.DeleteByIDAndUser(ctx, tx, id, userID)
		if err != nil {
			return pkg.HandleSQLError(traceID, s.logger, err)
		}
		if deleted == 0 {
			return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
		}
		return nil
	})
}

func (s *OrderServiceImpl) ListAll(ctx context.Context, traceID string) ([]models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, traceID string, id int64) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", err)
		}
		return models.Order{}, pkg.HandleSQLError(traceID, s.logger, err)
	}
	return order, nil
}

// SetStatus overwrites the status of any order. Any member of the closed
// enumeration is accepted from any current status.
func (s *OrderServiceImpl) SetStatus(ctx context.Context, traceID string, id int64, status pkg.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "Invalid order status", nil)
	}

	var updated models.Order
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.orders.UpdateStatus(ctx, tx, id, status)
		return txErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", err)
		}
		return models.Order{}, pkg.HandleSQLError(traceID, s.logger, err)
	}

	s.logger.Info("order status updated",
		zap.String(pkg.TraceId, traceID),
		zap.Int64("orderId", id),
		zap.String("newStatus", string(status)),
	)
	return updated, nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, traceID string, id int64) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleted, err := s.orders.DeleteByID(ctx, tx, id)
		if err != nil {
			return pkg.HandleSQLError(traceID, s.logger, err)
		}
		if deleted == 0 {
			return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
		}
		return nil
	})
}
