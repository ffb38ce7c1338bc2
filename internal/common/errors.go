package common

import (
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the single JSON error envelope every endpoint uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client-facing messages. The product speaks pt-BR; internal logs don't.
const (
	MsgInvalidCredentials = "Email ou senha inválidos"
	MsgTenantSuspended    = "Sua conta está suspensa. Contate o suporte."
	MsgInternalError      = "Erro interno no servidor"
	MsgTooManyAttempts    = "Muitas tentativas. Tente novamente em instantes."
	MsgForbidden          = "Acesso restrito"
	MsgInvalidToken       = "Token inválido"
)

// JSONError writes the error envelope with the given status.
func JSONError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: message})
}
