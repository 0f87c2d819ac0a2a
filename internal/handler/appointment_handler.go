package handler

import (
	"errors"
	"net/http"
	"strconv"

	"vet-appointments/internal/middleware"
	"vet-appointments/internal/service"
	"vet-appointments/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	log                *logrus.Logger
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, log *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		log:                log,
	}
}

type createdAppointment struct {
	ID                 uint   `json:"id"`
	CodigoConfirmacion string `json:"codigo_confirmacion"`
}

// CreateAppointment godoc
// @Summary Book an appointment
// @Description Validates the ten booking fields and stores an active appointment with a new confirmation code.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body service.CreateInput true "Booking data, fecha_cita as YYYY-MM-DD and hora_cita as HH:MM"
// @Success 201 {object} createdAppointment
// @Failure 400 {object} map[string]interface{} "campos_faltantes / campos_invalidos"
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var input service.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.CreatedResponse(c, "Appointment booked successfully", createdAppointment{
		ID:                 appointment.ID,
		CodigoConfirmacion: appointment.CodigoConfirmacion,
	})
}

// SearchAppointments godoc
// @Summary Find appointments by credential
// @Description Returns every appointment matching both the email and the confirmation code, latest date first.
// @Tags appointments
// @Produce json
// @Param email query string true "Client email (alias: correo)"
// @Param code query string true "Confirmation code (alias: codigo)"
// @Success 200 {array} models.Appointment
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/search [get]
func (h *AppointmentHandler) SearchAppointments(c *gin.Context) {
	correo := firstQuery(c, "email", "correo")
	codigo := firstQuery(c, "code", "codigo")

	appointments, err := h.appointmentService.FindByCredential(c.Request.Context(), correo, codigo)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, appointments)
}

// GetAppointment godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// UpdateAppointment godoc
// @Summary Reschedule an appointment
// @Description Overwrites date, time, reason, notes and pet data. Contact data, code and state are kept.
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param payload body service.UpdateInput true "Editable fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input service.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.appointmentService.Update(c.Request.Context(), id, input); err != nil {
		h.fail(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment updated successfully")
}

// CancelAppointment godoc
// @Summary Cancel an appointment
// @Description Sets estado to cancelada. Cancelling an already cancelled appointment also succeeds.
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/{id}/cancel [patch]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.appointmentService.Cancel(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment cancelled successfully")
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment deleted successfully")
}

// GetAppointmentHistory godoc
// @Summary Appointment audit trail
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {array} models.AuditLog
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /appointments/{id}/history [get]
func (h *AppointmentHandler) GetAppointmentHistory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	logs, err := h.appointmentService.History(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, logs)
}

// parseID reads the :id path value. Anything that is not a positive integer
// cannot name an appointment, so it is reported as not found.
func (h *AppointmentHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "Appointment not found")
		return 0, false
	}
	return uint(id), true
}

// fail is the single place where service errors become HTTP statuses.
func (h *AppointmentHandler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationErrorResponse(c, verr.Message, verr.Missing, verr.Invalid)
	case errors.Is(err, service.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Appointment not found")
	default:
		_ = c.Error(err)
		h.log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("Appointment request failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
