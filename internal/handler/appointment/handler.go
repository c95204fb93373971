package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finddoctor/scheduling-api/internal/model"
	appointmentService "github.com/finddoctor/scheduling-api/internal/service/appointment"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
	"github.com/finddoctor/scheduling-api/pkg/httputil"
	"github.com/finddoctor/scheduling-api/pkg/metrics"
)

type Handler struct {
	service *appointmentService.Service
	metrics *metrics.Metrics
}

func NewHandler(service *appointmentService.Service, metrics *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if apperrors.IsConflict(err) {
			h.metrics.BookingConflicts.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.BookingsCreated.Inc()
	httputil.RespondWithSuccess(c, http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status:       model.AppointmentStatus(c.Query("status")),
		PatientEmail: c.Query("patient_email"),
	}

	if s := c.Query("doctor_id"); s != "" {
		doctorID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
		filters.DoctorID = doctorID
	}

	if s := c.Query("appointment_date"); s != "" {
		date, err := model.ParseDate(s)
		if err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
		filters.AppointmentDate = &date
	}

	filters.Pagination.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filters.Pagination.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), id, model.AppointmentStatus(req.Status))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.BookingStatusMoves.WithLabelValues(string(apt.Status)).Inc()
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

// CancelAppointment is the delete verb: appointments are never removed,
// cancellation just moves them to the cancelled status.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.BookingsCancelled.Inc()
	c.Status(http.StatusNoContent)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id", h.UpdateAppointmentStatus)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}
