package handlers

import (
	"errors"
	"net/http"
	"time"

	"barberflow/internal/common"
	"barberflow/internal/models"
	"barberflow/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

type AppointmentHandlers struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandlers(appointmentService services.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{appointmentService: appointmentService}
}

type createAppointmentRequest struct {
	CustomerID     uuid.UUID `json:"customer_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	DateTime       string    `json:"date_time"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// dayFromQuery resolves ?date=YYYY-MM-DD in the server's zone, defaulting
// to today. Bookings are parsed in the same zone, so a day's appointments
// always fall inside that day's queried window.
func dayFromQuery(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(dateLayout, raw, time.Local)
}

// ListAppointments returns the agenda for ?date=YYYY-MM-DD, defaulting
// to today.
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	day, err := dayFromQuery(c)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Data inválida, use AAAA-MM-DD")
	}

	appointments, err := h.appointmentService.ListDay(ctx, orgID, day)
	if err != nil {
		log.Error().Err(err).Msg("list appointments failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	if appointments == nil {
		appointments = []*models.Appointment{}
	}
	return c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}
	if req.CustomerID == uuid.Nil || req.ServiceID == uuid.Nil || req.ProfessionalID == uuid.Nil {
		return common.JSONError(c, http.StatusBadRequest, "Cliente, serviço e profissional são obrigatórios")
	}

	startsAt, err := time.ParseInLocation(dateTimeLayout, req.DateTime, time.Local)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Data e hora inválidas")
	}

	appointment, err := h.appointmentService.Book(ctx, orgID, &services.BookAppointmentRequest{
		CustomerID:     req.CustomerID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		StartsAt:       startsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return common.JSONError(c, http.StatusNotFound, "Cliente não encontrado")
		case errors.Is(err, pgx.ErrNoRows):
			return common.JSONError(c, http.StatusNotFound, "Serviço não encontrado")
		case errors.Is(err, services.ErrServiceNotOffered):
			return common.JSONError(c, http.StatusUnprocessableEntity, "Este profissional não oferece o serviço escolhido")
		case errors.Is(err, services.ErrOutsideWorkingHours):
			return common.JSONError(c, http.StatusUnprocessableEntity, "Horário fora do expediente do profissional")
		case errors.Is(err, services.ErrSlotTaken):
			return common.JSONError(c, http.StatusUnprocessableEntity, "Horário já ocupado")
		default:
			log.Error().Err(err).Msg("book appointment failed")
			return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
		}
	}
	return c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandlers) ChangeStatus(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "ID inválido")
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Requisição inválida")
	}
	if !models.ValidAppointmentStatus(req.Status) {
		return common.JSONError(c, http.StatusBadRequest, "Status inválido")
	}

	appointment, err := h.appointmentService.ChangeStatus(ctx, orgID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return common.JSONError(c, http.StatusNotFound, "Agendamento não encontrado")
		case errors.Is(err, services.ErrInvalidTransition):
			return common.JSONError(c, http.StatusUnprocessableEntity, "Agendamento já finalizado")
		default:
			log.Error().Err(err).Msg("change appointment status failed")
			return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
		}
	}
	return c.JSON(http.StatusOK, appointment)
}

// DashboardSummary powers the home screen cards: today's appointment
// count, completed revenue and the customer base size.
func (h *AppointmentHandlers) DashboardSummary(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, common.MsgInvalidToken)
	}

	day, err := dayFromQuery(c)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Data inválida, use AAAA-MM-DD")
	}

	summary, err := h.appointmentService.Summary(ctx, orgID, day)
	if err != nil {
		log.Error().Err(err).Msg("dashboard summary failed")
		return common.JSONError(c, http.StatusInternalServerError, common.MsgInternalError)
	}
	return c.JSON(http.StatusOK, summary)
}
