package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finddoctor/scheduling-api/internal/model"
	availabilityService "github.com/finddoctor/scheduling-api/internal/service/availability"
	"github.com/finddoctor/scheduling-api/pkg/httputil"
)

type Handler struct {
	service *availabilityService.Service
}

func NewHandler(service *availabilityService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddWindow(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	// Formats are already validated by the binding tags.
	startTime, _ := model.ParseTimeOfDay(req.StartTime)
	endTime, _ := model.ParseTimeOfDay(req.EndTime)

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	window, err := h.service.AddWindow(c.Request.Context(), doctorID, *req.DayOfWeek, startTime, endTime, isAvailable)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, window)
}

func (h *Handler) ListWindows(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var dayOfWeek *int
	if s := c.Query("day_of_week"); s != "" {
		day, err := strconv.Atoi(s)
		if err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
		dayOfWeek = &day
	}

	windows, err := h.service.ListWindows(c.Request.Context(), doctorID, dayOfWeek)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, windows)
}

func (h *Handler) RemoveWindow(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.RemoveWindow(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/doctors/:id/availability", h.AddWindow)
	r.GET("/doctors/:id/availability", h.ListWindows)
	r.DELETE("/availability/:id", h.RemoveWindow)
}
