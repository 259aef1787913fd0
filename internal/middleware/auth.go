package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lucianosaints/app-marica-cidadao/internal/config"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

type ctxKey string

const (
	CtxUserID ctxKey = "uid"
	CtxStaff  ctxKey = "staff"
)

// WithAuth parses the bearer token, when present, and stashes the user id
// and staff flag in the request context. Requests without a valid token
// pass through unauthenticated; RequireAuth blocks them where needed.
func WithAuth(log zerolog.Logger, cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseJWT(cfg.SessionSecret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				log.Debug().Err(err).Msg("token inválido")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxStaff, claims.Staff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
