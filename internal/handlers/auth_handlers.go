package handlers

import (
	"errors"
	"net/http"

	"barberflow/internal/common"
	"barberflow/internal/models"
	"barberflow/internal/repositories"
	"barberflow/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandlers handles the login gate and the authenticated profile route.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token        string                  `json:"token"`
	User         models.UserView         `json:"user"`
	Organization models.OrganizationView `json:"organization"`
}

// Login verifies credentials, enforces tenant status and issues the
// access token. Unknown email and wrong password are indistinguishable
// in status code and body.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}
	if req.Email == "" || req.Password == "" {
		return common.JSONError(c, http.StatusBadRequest, "Email e senha são obrigatórios")
	}

	result, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidCredentials)
		case errors.Is(err, services.ErrTenantSuspended):
			return common.JSONError(c, http.StatusForbidden, common.MsgTenantSuspended)
		default:
			log.Error().Err(err).Msg("login failed")
			return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
		}
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:        result.Token,
		User:         result.User.View(),
		Organization: result.Organization.View(),
	})
}

// Register is a placeholder: self-service signup (organization plus
// initial admin in one transaction) is not part of this system yet.
func (h *AuthHandlers) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"msg": "Em breve: Cadastro automático",
	})
}

// Me returns the authenticated user's record.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	user, err := h.userRepo.GetByID(ctx, orgID, userID)
	if err != nil {
		return common.JSONError(c, http.StatusNotFound, "Usuário não encontrado")
	}

	return c.JSON(http.StatusOK, user)
}
