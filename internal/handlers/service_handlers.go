package handlers

import (
	"errors"
	"net/http"

	"barberflow/internal/common"
	"barberflow/internal/models"
	"barberflow/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ServiceHandlers exposes the bookable catalog.
type ServiceHandlers struct {
	catalogService services.CatalogService
}

func NewServiceHandlers(catalogService services.CatalogService) *ServiceHandlers {
	return &ServiceHandlers{catalogService: catalogService}
}

func (h *ServiceHandlers) ListServices(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	list, err := h.catalogService.List(ctx, orgID)
	if err != nil {
		log.Error().Err(err).Msg("list services failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if list == nil {
		list = []*models.Service{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ServiceHandlers) CreateService(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	var req services.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	service, err := h.catalogService.Create(ctx, orgID, &req)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Preencha nome, preço e duração válidos")
	}
	return c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandlers) UpdateService(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var req services.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	service, err := h.catalogService.Update(ctx, orgID, id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Serviço não encontrado")
		}
		return common.JSONError(c, http.StatusBadRequest, "Preencha nome, preço e duração válidos")
	}
	return c.JSON(http.StatusOK, service)
}

func (h *ServiceHandlers) DeleteService(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	if err := h.catalogService.Delete(ctx, orgID, id); err != nil {
		log.Error().Err(err).Msg("delete service failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	return c.NoContent(http.StatusNoContent)
}
