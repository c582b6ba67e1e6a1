package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

type contextKey string

const accountKey contextKey = "account"

// AuthMiddleware requires X-Account plus X-Proof headers on state-changing
// requests and lets the auth collaborator confirm the caller controls the
// account. The verified account lands in the request context.
func AuthMiddleware(verifier domain.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := r.Header.Get("X-Account")
			proof := r.Header.Get("X-Proof")
			if account == "" {
				respondError(w, fmt.Errorf("%w: X-Account header required", domain.ErrUnauthorized))
				return
			}
			if err := verifier.Verify(r.Context(), account, proof); err != nil {
				respondError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerAccount(r *http.Request) string {
	account, _ := r.Context().Value(accountKey).(string)
	return account
}

// LoggingMiddleware writes one structured line per request.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
