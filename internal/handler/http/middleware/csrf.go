package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
)

const (
	CSRFHeader    = "X-CSRF-Token"
	CSRFFormField = "csrf_token"
)

// CSRFProtect requires mutating requests to carry the session's CSRF token in
// the X-CSRF-Token header or the csrf_token form field.
func CSRFProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		caller, ok := auth.FromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrUnauthenticated)
			return
		}

		if !ValidCSRFToken(caller, submittedCSRFToken(r)) {
			response.HandleError(w, auth.ErrCSRFTokenMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidCSRFToken compares token with the caller's session token in constant time.
func ValidCSRFToken(caller auth.AuthContext, token string) bool {
	if caller.CSRFToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(caller.CSRFToken), []byte(token)) == 1
}

func submittedCSRFToken(r *http.Request) string {
	if token := r.Header.Get(CSRFHeader); token != "" {
		return token
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		return r.FormValue(CSRFFormField)
	}
	return ""
}
