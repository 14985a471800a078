package auth

import (
	"net/http"
	"strings"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/httpx"
)

// RequireRole rejects requests without a valid bearer token (401) or whose token carries none
// of roles (403). With no roles any authenticated caller passes. Claims are put in the request context.
func RequireRole(svc Service, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, tokenString, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				httpx.Error(w, apperr.Unauthorized("missing bearer token"))
				return
			}

			claims, err := svc.ParseToken(tokenString)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !hasRole(claims.Role, roles) {
				httpx.Error(w, apperr.Forbidden("insufficient role"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func hasRole(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
