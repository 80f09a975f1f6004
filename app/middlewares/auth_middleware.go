package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/services"
	"github.com/bulanstore/bulan-api/app/utils/token"
)

// AuthMiddleware authenticates requests with a Bearer access token, rejects
// revoked or wrong-type tokens and loads the user into the request context.
type AuthMiddleware struct {
	tokens    *token.JWTUtil
	blocklist services.TokenBlocklist
	userRepo  repositories.UserRepository
	render    *render.Render
}

func NewAuthMiddleware(
	tokens *token.JWTUtil,
	blocklist services.TokenBlocklist,
	userRepo repositories.UserRepository,
	renderer *render.Render,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		blocklist: blocklist,
		userRepo:  userRepo,
		render:    renderer,
	}
}

func (m *AuthMiddleware) unauthorized(w http.ResponseWriter, message string) {
	m.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": message})
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			m.unauthorized(w, "missing or malformed authorization header")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "), token.TypeAccess)
		if err != nil {
			m.unauthorized(w, "invalid or expired token")
			return
		}

		revoked, err := m.blocklist.IsRevoked(r.Context(), claims.ID)
		if err != nil || revoked {
			m.unauthorized(w, "token has been revoked")
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), claims.UserID)
		if err != nil || user == nil || !user.IsActive {
			m.unauthorized(w, "user not found or deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
		ctx = context.WithValue(ctx, helpers.ContextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
