package board

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/platform/db"
	"github.com/corkboard/corkboard/internal/shared"
)

// Repository defines persistence operations for boards.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Board, error)
	List(ctx context.Context) ([]Board, error)
	Create(ctx context.Context, b Board) (*Board, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const boardColumns = "id, title, content, owner_username, created_at, updated_at"

func scanBoard(row pgx.Row) (*Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Owner, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Board, error) {
	const query = "SELECT " + boardColumns + " FROM boards WHERE id = $1"
	return scanBoard(r.db.QueryRow(ctx, query, id))
}

// List returns all boards, most recently modified first.
func (r *repository) List(ctx context.Context) ([]Board, error) {
	const query = "SELECT " + boardColumns + " FROM boards ORDER BY updated_at DESC"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Owner, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// Create inserts a board and returns the stored row from the same
// statement, including the generated id and timestamps.
func (r *repository) Create(ctx context.Context, b Board) (*Board, error) {
	const query = `
		INSERT INTO boards (title, content, owner_username, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + boardColumns

	return scanBoard(r.db.QueryRow(ctx, query, b.Title, b.Content, b.Owner))
}

func (r *repository) Update(ctx context.Context, id int64, title, content string) error {
	const query = `
		UPDATE boards
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, title, content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
