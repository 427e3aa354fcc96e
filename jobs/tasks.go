// Package jobs wires background task processing for the API.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/comment"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeCommentNotify is the task type for board owner notifications.
	TaskTypeCommentNotify = "comment:notify"
)

// NewCommentNotifyTask constructs an Asynq task for a new comment.
func NewCommentNotifyTask(n comment.CommentNotification) (*asynq.Task, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeCommentNotify, data), nil
}

// NewCommentNotifyHandler returns the worker-side handler that records the
// notification for the board owner.
func NewCommentNotifyHandler(pool *pgxpool.Pool, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var n comment.CommentNotification
		if err := json.Unmarshal(t.Payload(), &n); err != nil {
			return asynq.SkipRetry
		}

		const query = `
			INSERT INTO notifications (username, board_id, comment_id, author, created_at)
			VALUES ($1, $2, $3, $4, now())`
		if _, err := pool.Exec(ctx, query, n.BoardOwner, n.BoardID, n.CommentID, n.Author); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("comment notification recorded",
				slog.String("board_owner", n.BoardOwner),
				slog.Int64("board_id", n.BoardID),
				slog.Int64("comment_id", n.CommentID),
			)
		}
		return nil
	}
}
