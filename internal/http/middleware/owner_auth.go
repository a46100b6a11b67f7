package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ownerClaimsKey contextKey = "ownerClaims"

// OwnerJWT enforces a simple HMAC-signed JWT for business-owner endpoints.
// The token subject must match the businessID route param, so an owner token
// never grants access to another tenant's data.
func OwnerJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "owner auth disabled", http.StatusUnauthorized)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if businessID := chi.URLParam(r, "businessID"); businessID != "" && claims.Subject != businessID {
				http.Error(w, "token not valid for this business", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ownerClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerClaimsFromContext returns owner JWT claims if present.
func OwnerClaimsFromContext(ctx context.Context) (jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(ownerClaimsKey).(jwt.RegisteredClaims)
	return claims, ok
}
