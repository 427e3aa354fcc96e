package board_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/shared"
)

type mockRepository struct {
	boards map[int64]*board.Board
	nextID int64
	now    time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		boards: make(map[int64]*board.Board),
		nextID: 1,
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockRepository) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, board.Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*board.Board, error) {
	b, ok := m.boards[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context) ([]board.Board, error) {
	boards := make([]board.Board, 0, len(m.boards))
	for _, b := range m.boards {
		boards = append(boards, *b)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].UpdatedAt.After(boards[j].UpdatedAt)
	})
	return boards, nil
}

func (m *mockRepository) Create(ctx context.Context, b board.Board) (*board.Board, error) {
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = m.tick()
	b.UpdatedAt = b.CreatedAt
	stored := b
	m.boards[b.ID] = &stored
	return &b, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, title, content string) error {
	b, ok := m.boards[id]
	if !ok {
		return shared.ErrNotFound
	}
	b.Title = title
	b.Content = content
	b.UpdatedAt = m.tick()
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.boards[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.boards, id)
	return nil
}

func seedBoard(t *testing.T, repo *mockRepository, owner, title string) int64 {
	t.Helper()
	created, err := repo.Create(context.Background(), board.Board{Title: title, Content: "content", Owner: owner})
	require.NoError(t, err)
	return created.ID
}

// getlessRepository simulates a board vanishing right after the insert;
// the created row must still come back from the insert itself.
type getlessRepository struct {
	*mockRepository
}

func (m *getlessRepository) Get(ctx context.Context, id int64) (*board.Board, error) {
	return nil, shared.ErrNotFound
}

func TestCreateRequiresPrincipal(t *testing.T) {
	service := board.NewService(newMockRepository(), nil, nil)

	_, err := service.Create(context.Background(), nil, board.UpsertRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestCreateSetsOwner(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	created, err := service.Create(context.Background(), alice, board.UpsertRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Owner)
	assert.Equal(t, "hello", created.Title)
}

func TestCreateReturnsRowFromInsert(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(&getlessRepository{repo}, nil, nil)

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	created, err := service.Create(context.Background(), alice, board.UpsertRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Owner)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUpdateOwnerAllowed(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)
	id := seedBoard(t, repo, "alice", "original")

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	updated, err := service.Update(context.Background(), alice, id, board.UpsertRequest{Title: "edited", Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
}

func TestUpdateNonOwnerDenied(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)
	id := seedBoard(t, repo, "alice", "original")

	bob := &shared.Principal{Username: "bob", Role: shared.RoleUser}
	_, err := service.Update(context.Background(), bob, id, board.UpsertRequest{Title: "hijack", Content: "nope"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	current, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "original", current.Title)
}

func TestUpdateAnonymousDenied(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)
	id := seedBoard(t, repo, "alice", "original")

	_, err := service.Update(context.Background(), nil, id, board.UpsertRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestDeleteAdminOverride(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)
	id := seedBoard(t, repo, "alice", "original")

	carol := &shared.Principal{Username: "carol", Role: shared.RoleAdmin}
	require.NoError(t, service.Delete(context.Background(), carol, id))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingBoard(t *testing.T) {
	service := board.NewService(newMockRepository(), nil, nil)

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	err := service.Delete(context.Background(), alice, 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListMostRecentlyModifiedFirst(t *testing.T) {
	repo := newMockRepository()
	service := board.NewService(repo, nil, nil)

	first := seedBoard(t, repo, "alice", "first")
	second := seedBoard(t, repo, "bob", "second")

	boards, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, second, boards[0].ID)

	// Editing the older board moves it to the front.
	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	_, err = service.Update(context.Background(), alice, first, board.UpsertRequest{Title: "first edited", Content: "c"})
	require.NoError(t, err)

	boards, err = service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, boards[0].ID)
}
