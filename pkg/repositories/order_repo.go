package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/database"
	"github.com/sliceline/pizzeria/pkg/models"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create inserts a new order and returns it with the generated id.
	Create(ctx context.Context, tx pgx.Tx, order models.Order) (models.Order, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Order, error)
	// FindByIDAndUser returns the order only when it is owned by userID.
	FindByIDAndUser(ctx context.Context, id, userID int64) (models.Order, error)
	FindByID(ctx context.Context, id int64) (models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	// Update overwrites quantity and pizza size of an owned order.
	Update(ctx context.Context, tx pgx.Tx, order models.Order) (models.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status pkg.OrderStatus) (models.Order, error)
	// DeleteByIDAndUser removes an owned order; returns the number of rows deleted.
	DeleteByIDAndUser(ctx context.Context, tx pgx.Tx, id, userID int64) (int64, error)
	DeleteByID(ctx context.Context, tx pgx.Tx, id int64) (int64, error)
}

type OrderRepositoryImpl struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

const orderColumns = `id, quantity, order_status, pizza_size, user_id, created_at, updated_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.Quantity,
		&o.Status,
		&o.PizzaSize,
		&o.UserID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()
	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, order models.Order) (models.Order, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO orders (quantity, order_status, pizza_size, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderColumns,
		order.Quantity,
		order.Status,
		order.PizzaSize,
		order.UserID,
	)
	return scanOrder(row)
}

func (r *OrderRepositoryImpl) FindByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *OrderRepositoryImpl) FindByIDAndUser(ctx context.Context, id, userID int64) (models.Order, error) {
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id int64) (models.Order, error) {
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders`)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, order models.Order) (models.Order, error) {
	row := tx.QueryRow(ctx, `
		UPDATE orders
		SET quantity = $1, pizza_size = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING `+orderColumns,
		order.Quantity,
		order.PizzaSize,
		order.ID,
		order.UserID,
	)
	return scanOrder(row)
}

func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status pkg.OrderStatus) (models.Order, error) {
	row := tx.QueryRow(ctx, `
		UPDATE orders
		SET order_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns,
		status,
		id,
	)
	return scanOrder(row)
}

func (r *OrderRepositoryImpl) DeleteByIDAndUser(ctx context.Context, tx pgx.Tx, id, userID int64) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepositoryImpl) DeleteByID(ctx context.Context, tx pgx.Tx, id int64) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
