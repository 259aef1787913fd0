package middleware

import (
	"net/http"

	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

// RequireAuth blocks when no user is present in context (set by WithAuth).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "autenticação necessária")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff allows only municipal staff through.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.GetBool(r.Context(), CtxStaff) {
			utils.Error(w, http.StatusForbidden, "acesso restrito a servidores da prefeitura")
			return
		}
		next.ServeHTTP(w, r)
	})
}
