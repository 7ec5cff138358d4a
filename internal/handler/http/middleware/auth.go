package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and stores
// the caller's auth.AuthContext in the request context. It must run after
// jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		caller, err := jwt.AuthContextFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), caller)))
	}
	return http.HandlerFunc(hfn)
}

// Caller returns the AuthContext stored by AuthRequired. Handlers behind
// AuthRequired can rely on ok being true.
func Caller(r *http.Request) (auth.AuthContext, bool) {
	return auth.FromContext(r.Context())
}
