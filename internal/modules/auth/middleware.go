package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
)

type ctxKey struct{}

// ClaimsFrom returns the claims stored by RequirePermission.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}

// RequirePermission rejects requests without a valid bearer token (401) or
// whose role lacks p (403).
func RequirePermission(svc Service, p permission.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				deny(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := svc.Verify(raw)
			if err != nil {
				deny(w, http.StatusUnauthorized, err.Error())
				return
			}
			if !permission.HasPermission(claims.Role, p) {
				deny(w, http.StatusForbidden, "role "+string(claims.Role)+" lacks "+string(p))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}
