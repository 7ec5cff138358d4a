package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
)

// RequirePermission checks if the caller's role grants permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := auth.FromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if !caller.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, caller.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
