package comment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/platform/db"
	"github.com/corkboard/corkboard/internal/shared"
)

// Repository defines persistence operations for comments.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Comment, error)
	ListByBoard(ctx context.Context, boardID int64) ([]Comment, error)
	Create(ctx context.Context, c Comment) (*Comment, error)
	Update(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
	BoardOwner(ctx context.Context, boardID int64) (string, error)
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

const commentColumns = "id, board_id, content, owner_username, created_at, updated_at"

func (r *repository) Get(ctx context.Context, id int64) (*Comment, error) {
	const query = "SELECT " + commentColumns + " FROM comments WHERE id = $1"

	var c Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BoardID, &c.Content, &c.Owner, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByBoard returns the comments of a board, newest first.
func (r *repository) ListByBoard(ctx context.Context, boardID int64) ([]Comment, error) {
	const query = "SELECT " + commentColumns + " FROM comments WHERE board_id = $1 ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Content, &c.Owner, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create inserts a comment and returns the stored row from the same
// statement, including the generated id and timestamps.
func (r *repository) Create(ctx context.Context, c Comment) (*Comment, error) {
	const query = `
		INSERT INTO comments (board_id, content, owner_username, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + commentColumns

	var created Comment
	err := r.db.QueryRow(ctx, query, c.BoardID, c.Content, c.Owner).Scan(
		&created.ID, &created.BoardID, &created.Content, &created.Owner, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, content string) error {
	const query = `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BoardOwner returns the owner of the parent board, or ErrNotFound when
// the board does not exist.
func (r *repository) BoardOwner(ctx context.Context, boardID int64) (string, error) {
	var owner string
	err := r.db.QueryRow(ctx, "SELECT owner_username FROM boards WHERE id = $1", boardID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return owner, nil
}
