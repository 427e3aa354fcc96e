package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/corkboard/corkboard/internal/shared"
	"github.com/corkboard/corkboard/internal/token"
)

// Service wraps account business rules: signup, login, logout.
type Service struct {
	repo       Repository
	codec      *token.Codec
	revoked    *RevocationList
	adminToken string
	tokenTTL   time.Duration
}

// NewService constructs a new Service.
func NewService(repo Repository, codec *token.Codec, revoked *RevocationList, adminToken string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		codec:      codec,
		revoked:    revoked,
		adminToken: adminToken,
		tokenTTL:   tokenTTL,
	}
}

// Signup registers a new account. The admin role is granted only when the
// submitted admin token matches the configured one.
func (s *Service) Signup(ctx context.Context, username, password string, admin bool, adminToken string) error {
	role := shared.RoleUser
	if admin {
		if subtle.ConstantTimeCompare([]byte(adminToken), []byte(s.adminToken)) != 1 {
			return shared.ErrForbidden
		}
		role = shared.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	return err
}

// Login validates credentials and issues a bearer token whose subject is
// the username. Lookup and compare failures collapse into one error so the
// response does not reveal which part failed.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	return s.codec.Issue(user.Username)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, p *shared.Principal) error {
	if p == nil {
		return shared.ErrUnauthenticated
	}
	if p.TokenID == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, p.TokenID, s.tokenTTL)
}
