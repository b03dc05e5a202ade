package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/sitedesk/sitedesk-engine/pkg/database"
)

// RequireScope returns middleware that attaches the active user's database
// scope to the request context. Requests arriving before any session has been
// established are rejected with 409 so the client knows to switch users
// first.
func RequireScope(manager *database.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := manager.WithScope(r.Context())
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "no_active_session",
					"message": "no user session established",
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
