package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/domain"
	"shareit/internal/logger"
	"shareit/internal/pkg/response"
)

type Handler struct {
	service         *Service
	defaultPageSize int
}

func NewHandler(service *Service, defaultPageSize int) *Handler {
	return &Handler{service: service, defaultPageSize: defaultPageSize}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.PATCH("/bookings/:id", h.Decide)
	rg.GET("/bookings/:id", h.Get)
	rg.GET("/bookings", h.ListByBooker)
	rg.GET("/bookings/owner", h.ListByOwner)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_time must be after start_time")
		return
	}

	d, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": d})
}

func (h *Handler) Decide(c *gin.Context) {
	userID := c.GetInt64("user_id")

	bookingID, ok := pathID(c)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "approved must be true or false")
		return
	}

	d, err := h.service.Decide(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": d})
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")

	bookingID, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": d})
}

func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *Handler) list(c *gin.Context, fn func(ctx context.Context, userID int64, state string, from, size int) ([]BookingDetails, error)) {
	userID := c.GetInt64("user_id")

	state := c.DefaultQuery("state", string(domain.FilterAll))

	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be an integer")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.defaultPageSize)))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "size must be an integer")
		return
	}

	ds, err := fn(c.Request.Context(), userID, state, from, size)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": ds})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrItemUnavailable),
		errors.Is(err, ErrStatusChange),
		errors.Is(err, ErrUnknownState),
		errors.Is(err, ErrInvalidPage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		logger.ErrorLogger.Errorf("booking request failed path=%s error=%v", c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking request")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
