package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/handlers/response"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type contextKey string

const userIDKey contextKey = "userID"

const signingMethod = "HS256"

type MiddlewareProvider struct {
	jwtService primary.JWTService
	logger     primary.Logger
}

func NewMiddlewareProvider(jwtService primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		logger:     logger,
	}
}

// JWTMiddleware verifies the bearer token and stores the caller's identity
// in the request context.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, fmt.Errorf("%w: authorization header missing", errs.Unauthorized))
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		ok, err := m.jwtService.VerifyTokenHMAC(r.Context(), tokenString, signingMethod)
		if err != nil || !ok {
			m.logger.Debug("Rejected bearer token", "error", err)
			response.WriteError(w, fmt.Errorf("%w: invalid token", errs.Unauthorized))
			return
		}

		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			response.WriteError(w, fmt.Errorf("%w: %w", errs.Unauthorized, err))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, payload.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the id stored by JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID is used by tests and internal callers that bypass the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
