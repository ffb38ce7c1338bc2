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

type ProfessionalHandlers struct {
	professionalService services.ProfessionalService
}

func NewProfessionalHandlers(professionalService services.ProfessionalService) *ProfessionalHandlers {
	return &ProfessionalHandlers{professionalService: professionalService}
}

func (h *ProfessionalHandlers) ListProfessionals(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	professionals, err := h.professionalService.List(ctx, orgID)
	if err != nil {
		log.Error().Err(err).Msg("list professionals failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if professionals == nil {
		professionals = []*models.Professional{}
	}
	return c.JSON(http.StatusOK, professionals)
}

func (h *ProfessionalHandlers) CreateProfessional(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	var req services.ProfessionalRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	professional, err := h.professionalService.Create(ctx, orgID, &req)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Nome é obrigatório")
	}
	return c.JSON(http.StatusCreated, professional)
}

func (h *ProfessionalHandlers) UpdateProfessional(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var req services.ProfessionalRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	professional, err := h.professionalService.Update(ctx, orgID, id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		return common.JSONError(c, http.StatusBadRequest, "Nome é obrigatório")
	}
	return c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandlers) DeleteProfessional(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	if err := h.professionalService.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		log.Error().Err(err).Msg("delete professional failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfessionalHandlers) GetWorkingHours(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	hours, err := h.professionalService.GetWorkingHours(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		log.Error().Err(err).Msg("get working hours failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if hours == nil {
		hours = []*models.WorkingHour{}
	}
	return c.JSON(http.StatusOK, hours)
}

// ReplaceWorkingHours swaps the full weekly schedule in one call, the way
// the team screen saves it.
func (h *ProfessionalHandlers) ReplaceWorkingHours(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var hours []*models.WorkingHour
	if err := c.Bind(&hours); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	if err := h.professionalService.ReplaceWorkingHours(ctx, orgID, id, hours); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		return common.JSONError(c, http.StatusBadRequest, "Horários inválidos")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfessionalHandlers) ListServiceLinks(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	links, err := h.professionalService.ListServiceLinks(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		log.Error().Err(err).Msg("list service links failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if links == nil {
		links = []*models.ProfessionalService{}
	}
	return c.JSON(http.StatusOK, links)
}

func (h *ProfessionalHandlers) ReplaceServiceLinks(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var links []*models.ProfessionalService
	if err := c.Bind(&links); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}

	if err := h.professionalService.ReplaceServiceLinks(ctx, orgID, id, links); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		return common.JSONError(c, http.StatusBadRequest, "Serviços inválidos")
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto stores the avatar shown on the team screen. Multipart field
// name is "photo".
func (h *ProfessionalHandlers) UploadPhoto(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Arquivo de foto é obrigatório")
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("open uploaded photo failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.professionalService.UploadPhoto(ctx, orgID, id, src, fileHeader.Size, contentType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.JSONError(c, http.StatusNotFound, "Profissional não encontrado")
		}
		log.Error().Err(err).Msg("upload professional photo failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	return c.NoContent(http.StatusNoContent)
}
