package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/google/uuid"
)

type contextKey struct{}

var userKey contextKey = contextKey{}

// AuthWithContext authenticates the bearer token and stores the caller's
// user id in the request context. Missing, malformed, expired and
// badly-signed tokens all collapse to the same 401 response.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil || !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			userKey,
			claims.UserID,
		)

		return h(w, r.WithContext(ctx))
	}
}

// RequireAdmin authorizes an already-authenticated caller against the
// admin role. It must run inside AuthWithContext.
func (mw *middleware) RequireAdmin(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID := GetUserIDFromContext(r.Context())
		if userID == uuid.Nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		isAdmin, err := mw.users.IsAdmin(r.Context(), userID)
		if err != nil {
			// A store failure is not a forbidden outcome; callers may
			// retry a 500 but must not retry a 403.
			return err
		}

		if !isAdmin {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrUnauthorizedAccess.Error(),
				nil,
			)
		}

		return h(w, r)
	}
}

func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	userIDStr, ok := ctx.Value(userKey).(string)
	if !ok {
		return uuid.Nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil
	}

	return userID
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
