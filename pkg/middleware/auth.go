package middleware

import (
	"net/http"
	"strings"

	"tenant-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies a bearer token and stores the caller identity in the
// request context. Requests without an Authorization header pass through
// anonymously; handlers reject them where identity is required.
func Authenticate(cfg utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>", map[string]string{"code": "UNAUTHENTICATED"})
				return
			}

			claims, err := utils.ParseToken(cfg, strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("ip", ClientIP(r)),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token", map[string]string{"code": "UNAUTHENTICATED"})
				return
			}

			ctx := utils.SetIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no verified identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.GetIdentity(r.Context()) == nil {
			utils.ResponseUnauthorized(w, "Authentication required", map[string]string{"code": "UNAUTHENTICATED"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
