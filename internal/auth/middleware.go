package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corkboard/corkboard/internal/platform/httpx"
	"github.com/corkboard/corkboard/internal/shared"
	"github.com/corkboard/corkboard/internal/token"
)

// Middleware is the per-request authentication step. It establishes
// identity and nothing else; resource-level authorization stays with the
// services that load the resource.
type Middleware struct {
	Codec   *token.Codec
	Users   Repository
	Revoked *RevocationList
	Logger  *slog.Logger
}

// Authenticate resolves the bearer token to a principal and attaches it to
// the request context. Requests without a token pass through as anonymous;
// requests with a bad token are rejected before any resource is touched.
// The role comes from the user store on every request, never from the
// token, so role changes take effect without reissuing tokens.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := m.Codec.ResolveBearer(r.Header)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !m.Codec.Validate(raw) {
			httpx.RespondError(w, shared.ErrTokenInvalid)
			return
		}

		claims, err := m.Codec.Claims(raw)
		if err != nil {
			httpx.RespondError(w, shared.ErrTokenInvalid)
			return
		}

		if m.Revoked != nil {
			revoked, err := m.Revoked.IsRevoked(r.Context(), claims.TokenID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("check token revocation", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			if revoked {
				httpx.RespondError(w, shared.ErrTokenInvalid)
				return
			}
		}

		user, err := m.Users.FindByUsername(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, shared.ErrUserNotFound) {
				if m.Logger != nil {
					m.Logger.Error("resolve token subject", slog.Any("error", err))
				}
			}
			httpx.RespondError(w, err)
			return
		}

		principal := &shared.Principal{
			Username: user.Username,
			Role:     user.Role,
			TokenID:  claims.TokenID,
		}
		ctx := shared.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
