package doctor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finddoctor/scheduling-api/internal/model"
	dashboardService "github.com/finddoctor/scheduling-api/internal/service/dashboard"
	doctorService "github.com/finddoctor/scheduling-api/internal/service/doctor"
	"github.com/finddoctor/scheduling-api/pkg/httputil"
)

type Handler struct {
	service   *doctorService.Service
	dashboard *dashboardService.Service
}

func NewHandler(service *doctorService.Service, dashboard *dashboardService.Service) *Handler {
	return &Handler{service: service, dashboard: dashboard}
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	doctor, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, doctor)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	doctor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, doctor)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	filters := &model.DoctorFilters{
		EstablishmentID: c.Query("establishment_id"),
		Specialty:       c.Query("specialty"),
	}
	filters.Pagination.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filters.Pagination.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	doctors, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, doctors)
}

// RemoveDoctor deletes the doctor and cascades to all of its availability
// windows and appointments.
func (h *Handler) RemoveDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DoctorDashboard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var startDate, endDate *model.Date
	if s := c.Query("start_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
		startDate = &d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
		endDate = &d
	}

	appointments, err := h.dashboard.DoctorDashboard(c.Request.Context(), id, startDate, endDate)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.RegisterDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.DELETE("/:id", h.RemoveDoctor)
		doctors.GET("/:id/dashboard", h.DoctorDashboard)
	}
}
