package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/tenancy"
)

// withBusinessContext stashes the route's business id into the request
// context so downstream code can enforce tenant scoping without re-parsing
// the URL.
func withBusinessContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID := strings.TrimSpace(chi.URLParam(r, "businessID"))
		if businessID == "" {
			http.Error(w, "missing business id", http.StatusBadRequest)
			return
		}
		ctx := tenancy.WithBusinessID(r.Context(), businessID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// businessIDFromRequest exposes the business id for local handlers.
func businessIDFromRequest(r *http.Request) (string, bool) {
	return tenancy.BusinessIDFromContext(r.Context())
}
