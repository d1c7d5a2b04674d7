package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
)

// Authenticator resolves a bearer token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*auth.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller in the request context.
func Authenticate(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.WriteError(w, r, apperrors.Unauthorized("Unauthenticated"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.WriteError(w, r, apperrors.Unauthorized("Unauthenticated"))
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.WriteError(w, r, apperrors.Unauthorized("Unauthenticated"))
				return
			}

			p, err := a.Authenticate(r.Context(), token)
			if err != nil {
				utils.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePermission answers 403 unless the authenticated caller's role holds perm.
func RequirePermission(perm models.Permission, msg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				utils.WriteError(w, r, apperrors.Unauthorized("Unauthenticated"))
				return
			}
			if !p.Can(perm) {
				utils.WriteError(w, r, apperrors.Forbidden(msg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
