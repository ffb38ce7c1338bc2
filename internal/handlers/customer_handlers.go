package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"barberflow/internal/common"
	"barberflow/internal/models"
	"barberflow/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	customers, err := h.customerService.List(ctx, orgID, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("list customers failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	var req services.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	customer, err := h.customerService.Create(ctx, orgID, &req)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Nome e telefone são obrigatórios")
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var req services.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	customer, err := h.customerService.Update(ctx, orgID, id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Cliente não encontrado")
		}
		return common.JSONError(c, http.StatusBadRequest, "Nome e telefone são obrigatórios")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	if err := h.customerService.Delete(ctx, orgID, id); err != nil {
		log.Error().Err(err).Msg("delete customer failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	return c.NoContent(http.StatusNoContent)
}
