package middleware

import (
	"strings"

	"courtbook/core/constants"
	"courtbook/core/controller"
	"courtbook/core/errors"
	"courtbook/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtSecret string
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// AuthMiddleware verifies the bearer token and stores the claims in the
// request context. Identity issuing lives in the external auth service;
// only verification happens here.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Invalid Authorization header format")
			}

			claims, err := utils.ParseToken(parts[1], m.jwtSecret)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRole guards a route group to a single role. Business-invariant
// authorization (venue ownership) is still enforced in the services.
func (m *Middleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "User not authenticated")
			}
			if claims.Role != role && claims.Role != constants.RoleAdmin {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "Insufficient role")
			}
			return next(c)
		}
	}
}
