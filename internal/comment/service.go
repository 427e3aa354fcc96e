package comment

import (
	"context"
	"log/slog"

	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/shared"
)

// CommentNotification describes a freshly created comment for the board
// owner's notification feed.
type CommentNotification struct {
	BoardID    int64  `json:"board_id"`
	BoardOwner string `json:"board_owner"`
	CommentID  int64  `json:"comment_id"`
	Author     string `json:"author"`
}

// Notifier enqueues comment notifications for asynchronous delivery.
type Notifier interface {
	NotifyComment(ctx context.Context, n CommentNotification) error
}

// Service implements comment operations with the same ordering contract as
// boards: authenticate, load, authorize, then mutate.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds a Service instance. notifier may be nil.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Create stores a new comment under an existing board. The parent board
// must resolve; anonymous create is rejected. The existence check and the
// insert share one transaction so the board cannot vanish between them.
func (s *Service) Create(ctx context.Context, p *shared.Principal, req CreateRequest) (*Comment, error) {
	if p == nil {
		return nil, shared.ErrUnauthenticated
	}

	var created *Comment
	var owner string
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		var err error
		owner, err = tx.BoardOwner(ctx, req.BoardID)
		if err != nil {
			return err
		}
		created, err = tx.Create(ctx, Comment{
			BoardID: req.BoardID,
			Content: req.Content,
			Owner:   p.Username,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	// Notification delivery is best effort; the comment is already
	// persisted.
	if s.notifier != nil && owner != p.Username {
		notification := CommentNotification{
			BoardID:    req.BoardID,
			BoardOwner: owner,
			CommentID:  created.ID,
			Author:     p.Username,
		}
		if err := s.notifier.NotifyComment(ctx, notification); err != nil && s.logger != nil {
			s.logger.Warn("enqueue comment notification", slog.Any("error", err))
		}
	}
	return created, nil
}

// Update edits a comment after an owner-or-admin check.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, req UpdateRequest) (*Comment, error) {
	var updated *Comment
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.AuthorizeMutation(p, current.Owner).Err(); err != nil {
			return err
		}
		if err := tx.Update(ctx, id, req.Content); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a comment after an owner-or-admin check.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.AuthorizeMutation(p, current.Owner).Err(); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

// ListForBoard adapts the board's comments into the nested view embedded
// in board detail responses.
func (s *Service) ListForBoard(ctx context.Context, boardID int64) ([]board.CommentView, error) {
	comments, err := s.repo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	views := make([]board.CommentView, len(comments))
	for i, c := range comments {
		views[i] = board.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Owner:     c.Owner,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return views, nil
}
