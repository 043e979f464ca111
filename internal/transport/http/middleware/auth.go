package middleware

import (
	"context"
	"net/http"
	"strings"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// UserContext is the decoded identity attached to authenticated requests.
type UserContext struct {
	UserID int64
	Email  string
	Role   string
}

// RequireAuth gates a route group on a valid bearer token. A missing or
// malformed Authorization header is 401; a token that fails signature or
// expiry checks is 403. No datastore round trip happens here.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "access token required", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				api.Fail(w, http.StatusForbidden, "invalid_token", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
