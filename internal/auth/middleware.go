package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

const identityContextKey = "identity"

// TokenResolver resolves a bearer token to the user it identifies. A token
// whose user record no longer exists must fail resolution.
type TokenResolver interface {
	VerifyToken(ctx context.Context, token string) (*model.User, error)
}

// CurrentUser returns the identity attached by the Gate middleware, or nil
// on a route the gate never ran for.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(identityContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// Gate returns middleware that guards private routes. It extracts the bearer
// token from the Authorization header, resolves it to a user and attaches
// that user to the request context; the handler is never reached on failure.
func Gate(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				he := apperrors.MapErrorToHTTP(apperrors.ErrNoToken)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				he := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			user, err := resolver.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				he := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			c.Set(identityContextKey, user)
			return next(c)
		}
	}
}
