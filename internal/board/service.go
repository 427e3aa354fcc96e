package board

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/shared"
)

// Service implements board operations. Every mutating operation resolves
// the target inside one transaction, authorizes against the owner it just
// read, and only then writes.
type Service struct {
	repo   Repository
	cache  *ListCache
	logger *slog.Logger
	group  singleflight.Group
}

// NewService builds a Service instance.
func NewService(repo Repository, cache *ListCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Create stores a new board owned by the principal. Anonymous create is
// rejected; no ownership check applies.
func (s *Service) Create(ctx context.Context, p *shared.Principal, req UpsertRequest) (*Board, error) {
	if p == nil {
		return nil, shared.ErrUnauthenticated
	}

	b := Board{Title: req.Title, Content: req.Content, Owner: p.Username}
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return created, nil
}

// Get returns a board by id. Anonymous access is allowed.
func (s *Service) Get(ctx context.Context, id int64) (*Board, error) {
	return s.repo.Get(ctx, id)
}

// List returns all boards, most recently modified first. The result is
// cached; concurrent misses collapse into a single store query.
func (s *Service) List(ctx context.Context) ([]Board, error) {
	if boards, ok := s.cache.Get(ctx); ok {
		return boards, nil
	}

	result, err, _ := s.group.Do(listCacheKey, func() (any, error) {
		boards, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, boards); err != nil && s.logger != nil {
			s.logger.Warn("cache board list", slog.Any("error", err))
		}
		return boards, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Board), nil
}

// Update replaces the title and content of the board after an
// owner-or-admin check against the stored owner.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, req UpsertRequest) (*Board, error) {
	var updated *Board
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.AuthorizeMutation(p, current.Owner).Err(); err != nil {
			return err
		}
		if err := tx.Update(ctx, id, req.Title, req.Content); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return updated, nil
}

// Delete removes the board after an owner-or-admin check. Comments are
// removed with it by the store's cascade.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.AuthorizeMutation(p, current.Owner).Err(); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate board list cache", slog.Any("error", err))
	}
}
