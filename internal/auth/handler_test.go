package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/shared"
	"github.com/corkboard/corkboard/internal/token"
)

func newAccountRouter(t *testing.T, repo auth.Repository) (http.Handler, *token.Codec, *auth.RevocationList) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	revoked := auth.NewRevocationList(client)
	codec := token.NewCodec("test-secret", time.Hour)
	service := auth.NewService(repo, codec, revoked, "admin-signup-token", time.Hour)
	handler := auth.NewHandler(nil, service)

	r := chi.NewRouter()
	r.Use(auth.Middleware{Codec: codec, Users: repo, Revoked: revoked}.Authenticate)
	r.Route("/api/user", handler.MountRoutes)
	return r, codec, revoked
}

func TestSignupRejectsBadUsername(t *testing.T) {
	router, _, _ := newAccountRouter(t, &stubRepo{})

	body := `{"username":"Mixed_Case!","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), `"status":400`)
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := &stubRepo{users: map[string]*auth.User{
		"alice": {ID: 1, Username: "alice", Role: shared.RoleUser},
	}}
	router, _, _ := newAccountRouter(t, repo)

	body := `{"username":"alice","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestSignupAdminRequiresToken(t *testing.T) {
	repo := &stubRepo{}
	router, _, _ := newAccountRouter(t, repo)

	body := `{"username":"carol","password":"password1","admin":true,"admin_token":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)

	body = `{"username":"carol","password":"password1","admin":true,"admin_token":"admin-signup-token"}`
	req = httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, shared.RoleAdmin, repo.users["carol"].Role)
}

func TestLoginIssuesValidToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &stubRepo{users: map[string]*auth.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: string(hash), Role: shared.RoleUser},
	}}
	router, codec, _ := newAccountRouter(t, repo)

	body := `{"username":"alice","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	authz := res.Header().Get("Authorization")
	require.True(t, strings.HasPrefix(authz, "Bearer "))
	raw := strings.TrimPrefix(authz, "Bearer ")
	require.True(t, codec.Validate(raw))
	claims, err := codec.Claims(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &stubRepo{users: map[string]*auth.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: string(hash), Role: shared.RoleUser},
	}}
	router, _, _ := newAccountRouter(t, repo)

	body := `{"username":"alice","password":"wrongpass1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := &stubRepo{users: map[string]*auth.User{
		"alice": {ID: 1, Username: "alice", Role: shared.RoleUser},
	}}
	router, codec, revoked := newAccountRouter(t, repo)

	raw, err := codec.Issue("alice")
	require.NoError(t, err)
	claims, err := codec.Claims(raw)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	isRevoked, err := revoked.IsRevoked(context.Background(), claims.TokenID)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	// The same token no longer authenticates.
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	router, _, _ := newAccountRouter(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
