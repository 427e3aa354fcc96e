package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard/corkboard/internal/comment"
	"github.com/corkboard/corkboard/internal/shared"
)

type mockRepository struct {
	comments    map[int64]*comment.Comment
	boardOwners map[int64]string
	nextID      int64
	txCalls     int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		comments:    make(map[int64]*comment.Comment),
		boardOwners: make(map[int64]string),
		nextID:      1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, comment.Repository) error) error {
	m.txCalls++
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*comment.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) ListByBoard(ctx context.Context, boardID int64) ([]comment.Comment, error) {
	result := []comment.Comment{}
	for _, c := range m.comments {
		if c.BoardID == boardID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockRepository) Create(ctx context.Context, c comment.Comment) (*comment.Comment, error) {
	c.ID = m.nextID
	m.nextID++
	stored := c
	m.comments[c.ID] = &stored
	return &c, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, content string) error {
	c, ok := m.comments[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.Content = content
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockRepository) BoardOwner(ctx context.Context, boardID int64) (string, error) {
	owner, ok := m.boardOwners[boardID]
	if !ok {
		return "", shared.ErrNotFound
	}
	return owner, nil
}

type recordingNotifier struct {
	sent []comment.CommentNotification
}

func (n *recordingNotifier) NotifyComment(ctx context.Context, notification comment.CommentNotification) error {
	n.sent = append(n.sent, notification)
	return nil
}

func TestCreateRequiresPrincipal(t *testing.T) {
	repo := newMockRepository()
	repo.boardOwners[1] = "alice"
	service := comment.NewService(repo, nil, nil)

	_, err := service.Create(context.Background(), nil, comment.CreateRequest{BoardID: 1, Content: "hi"})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	assert.Empty(t, repo.comments)
}

func TestCreateMissingBoard(t *testing.T) {
	service := comment.NewService(newMockRepository(), nil, nil)

	bob := &shared.Principal{Username: "bob", Role: shared.RoleUser}
	_, err := service.Create(context.Background(), bob, comment.CreateRequest{BoardID: 7, Content: "hi"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateNotifiesBoardOwner(t *testing.T) {
	repo := newMockRepository()
	repo.boardOwners[1] = "alice"
	notifier := &recordingNotifier{}
	service := comment.NewService(repo, notifier, nil)

	bob := &shared.Principal{Username: "bob", Role: shared.RoleUser}
	created, err := service.Create(context.Background(), bob, comment.CreateRequest{BoardID: 1, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "bob", created.Owner)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "alice", notifier.sent[0].BoardOwner)
	assert.Equal(t, created.ID, notifier.sent[0].CommentID)
}

func TestCreateChecksBoardInSameTransaction(t *testing.T) {
	repo := newMockRepository()
	repo.boardOwners[1] = "alice"
	service := comment.NewService(repo, nil, nil)

	bob := &shared.Principal{Username: "bob", Role: shared.RoleUser}
	created, err := service.Create(context.Background(), bob, comment.CreateRequest{BoardID: 1, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.txCalls)
	assert.Contains(t, repo.comments, created.ID)
}

func TestCreateOwnCommentSkipsNotification(t *testing.T) {
	repo := newMockRepository()
	repo.boardOwners[1] = "alice"
	notifier := &recordingNotifier{}
	service := comment.NewService(repo, notifier, nil)

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	_, err := service.Create(context.Background(), alice, comment.CreateRequest{BoardID: 1, Content: "self"})
	require.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestUpdateNonOwnerDenied(t *testing.T) {
	repo := newMockRepository()
	repo.boardOwners[1] = "alice"
	repo.comments[1] = &comment.Comment{ID: 1, BoardID: 1, Content: "original", Owner: "alice"}
	service := comment.NewService(repo, nil, nil)

	bob := &shared.Principal{Username: "bob", Role: shared.RoleUser}
	_, err := service.Update(context.Background(), bob, 1, comment.UpdateRequest{Content: "edited"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Equal(t, "original", repo.comments[1].Content)
}

func TestUpdateOwnerAllowed(t *testing.T) {
	repo := newMockRepository()
	repo.comments[1] = &comment.Comment{ID: 1, BoardID: 1, Content: "original", Owner: "alice"}
	service := comment.NewService(repo, nil, nil)

	alice := &shared.Principal{Username: "alice", Role: shared.RoleUser}
	updated, err := service.Update(context.Background(), alice, 1, comment.UpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteAdminOverride(t *testing.T) {
	repo := newMockRepository()
	repo.comments[1] = &comment.Comment{ID: 1, BoardID: 1, Content: "spam", Owner: "bob"}
	service := comment.NewService(repo, nil, nil)

	carol := &shared.Principal{Username: "carol", Role: shared.RoleAdmin}
	require.NoError(t, service.Delete(context.Background(), carol, 1))
	assert.Empty(t, repo.comments)
}

func TestListForBoard(t *testing.T) {
	repo := newMockRepository()
	repo.comments[1] = &comment.Comment{ID: 1, BoardID: 1, Content: "first", Owner: "bob"}
	repo.comments[2] = &comment.Comment{ID: 2, BoardID: 2, Content: "other board", Owner: "bob"}
	service := comment.NewService(repo, nil, nil)

	views, err := service.ListForBoard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "first", views[0].Content)
}
