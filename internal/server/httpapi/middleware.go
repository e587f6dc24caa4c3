package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskvault/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

const invalidCredentialsDetail = "Invalid Credentials"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. An absent or malformed header yields "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return header[len(prefix):]
}

// requireIdentity resolves the bearer token into a trusted identity and
// puts it on the request context. Every failure collapses into a single
// 401 "Invalid Credentials" response; there is no retry.
func (s *Server) requireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := auth.ResolveIdentity(bearerToken(r), s.jwtSecret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, invalidCredentialsDetail)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin additionally rejects non-admin identities before any
// lookup happens.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireIdentity(func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r.Context()).IsAdmin() {
			writeDetail(w, http.StatusUnauthorized, invalidCredentialsDetail)
			return
		}
		next(w, r)
	})
}

// identityFrom returns the identity placed on the context by
// requireIdentity. Handlers are only reachable through that middleware,
// so a missing value is a programming error and yields the zero Identity,
// which matches nothing.
func identityFrom(ctx context.Context) auth.Identity {
	identity, _ := ctx.Value(identityKey).(auth.Identity)
	return identity
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// withRequestLogging wraps the handler and logs every request with a
// generated request id. Tokens and passwords are never logged.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		s.logger.Info(r.Context(), "http request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
