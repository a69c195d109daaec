package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/server/auth"
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// logRequests records method, path, status and duration.
func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		a.logger.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", sw.code, "duration", time.Since(start).String())
	})
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", common.ErrorUnauthorized
	}
	return parts[1], nil
}

// requireAuth turns the bearer token into verified caller identity and
// attaches the claims to the request context.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}

		claims, err := a.authService.Verify(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}
