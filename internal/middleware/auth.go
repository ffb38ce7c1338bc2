package middleware

import (
	"context"
	"net/http"

	"barberflow/internal/common"
	"barberflow/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClaimsToContext runs after the echo-jwt verifier and copies the verified
// identity into the request context. Handlers read user, organization and
// role from there; client-supplied identifiers are never trusted.
func ClaimsToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
			}

			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
			}
			orgID, err := uuid.Parse(claims.OrganizationID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.OrganizationIDKey, orgID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRole guards a route group to the given roles, enforced from the
// token claims alone.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, common.MsgForbidden)
		}
	}
}
