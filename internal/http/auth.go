package http

import (
	"context"
	"net/http"
	"strings"

	applog "finvault/internal/log"
)

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

type userKey struct{}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// userIDFrom returns the authenticated user id set by requireAuth.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth rejects requests without a valid bearer token and stores the
// user id in the request context. The request logger gains a user_id field.
func requireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				UnauthorizedError().Write(w)
				return
			}
			userID, err := tokens.ParseToken(token)
			if err != nil || userID == "" {
				applog.FromContext(r.Context()).DebugContext(r.Context(), "Rejected bearer token", applog.FieldError, err)
				UnauthorizedError().Write(w)
				return
			}

			ctx := withUserID(r.Context(), userID)
			ctx = applog.NewContext(ctx, applog.FromContext(ctx).With(applog.FieldUserID, userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
