package middlewares

import (
	"context"

	"github.com/craftandcart/storefront/internal/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tokenManager interface {
	ValidateAccessToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

// adminChecker reports whether the user holds the admin role. A (false,
// nil) return means the user is missing or not an admin; a non-nil error
// means the lookup itself failed and must surface as a server fault, not
// a forbidden response.
type adminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type middleware struct {
	jwtManager tokenManager
	users      adminChecker
	logger     *zap.Logger
}

func NewMiddleware(tokenManager tokenManager, users adminChecker, logger *zap.Logger) *middleware {
	return &middleware{
		jwtManager: tokenManager,
		users:      users,
		logger:     logger,
	}
}
