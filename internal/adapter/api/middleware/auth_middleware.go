package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

// AuthMiddleware verifies the Firebase ID token and attaches an explicit
// session object to the request context. Handlers read the session; nothing
// downstream touches the raw token again.
type AuthMiddleware struct {
	authClient  usecase.FirebaseAuthClient
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authClient usecase.FirebaseAuthClient, authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authClient:  authClient,
		authUseCase: authUseCase,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		session, err := m.SessionFromToken(c.Request().Context(), parts[1])
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("session", session)
		return next(c)
	}
}

// SessionFromToken verifies an ID token and builds the session for its
// subject. Also used by the WebSocket handler, which authenticates via query
// parameter instead of header.
func (m *AuthMiddleware) SessionFromToken(ctx context.Context, token string) (*usecase.Session, error) {
	uid, err := m.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return m.authUseCase.SessionFor(ctx, uid)
}
