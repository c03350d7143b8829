package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sliceline/pizzeria/pkg/database"
	"github.com/sliceline/pizzeria/pkg/models"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts a new user and returns it with the generated id.
	Create(ctx context.Context, tx pgx.Tx, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update overwrites the mutable profile columns of the given user.
	Update(ctx context.Context, tx pgx.Tx, user models.User) (models.User, error)
}

type UserRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password, is_staff, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Password,
		&u.IsStaff,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, user models.User) (models.User, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password, is_staff, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		user.IsStaff,
		user.IsActive,
	)
	return scanUser(row)
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int64) (models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, user models.User) (models.User, error) {
	row := tx.QueryRow(ctx, `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+userColumns,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ID,
	)
	return scanUser(row)
}
