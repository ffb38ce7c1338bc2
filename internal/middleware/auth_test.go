package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"barberflow/internal/common"
	"barberflow/internal/models"
	"barberflow/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(claims jwt.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
	}
	return c, rec
}

func TestClaimsToContext_CopiesIdentity(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	c, _ := contextWithClaims(&services.TokenClaims{
		UserID:         userID.String(),
		OrganizationID: orgID.String(),
		Role:           models.RoleAdmin,
	})

	var gotUser, gotOrg uuid.UUID
	var gotRole string
	handler := ClaimsToContext()(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotUser, _ = common.GetUserIDFromContext(ctx)
		gotOrg, _ = common.GetOrganizationIDFromContext(ctx)
		gotRole, _ = common.GetRoleFromContext(ctx)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, orgID, gotOrg)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestClaimsToContext_MissingToken(t *testing.T) {
	c, _ := contextWithClaims(nil)

	handler := ClaimsToContext()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestClaimsToContext_MalformedIdentifiers(t *testing.T) {
	c, _ := contextWithClaims(&services.TokenClaims{
		UserID:         "not-a-uuid",
		OrganizationID: uuid.NewString(),
		Role:           models.RoleStaff,
	})

	handler := ClaimsToContext()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"admin allowed", models.RoleAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"staff rejected from admin route", models.RoleStaff, []string{models.RoleAdmin}, http.StatusForbidden},
		{"any of several", models.RoleProfessional, []string{models.RoleAdmin, models.RoleProfessional}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := contextWithClaims(&services.TokenClaims{
				UserID:         uuid.NewString(),
				OrganizationID: uuid.NewString(),
				Role:           tt.role,
			})

			handler := ClaimsToContext()(RequireRole(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}))

			err := handler(c)
			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				require.Error(t, err)
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, httpErr.Code)
			}
		})
	}
}
