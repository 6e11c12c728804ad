package item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.POST("/items", h.Create)
	rg.GET("/items/:id", h.Get)
	rg.GET("/items", h.ListMine)
	rg.PATCH("/items/:id/availability", h.SetAvailability)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	i, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": i})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	i, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": i})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")

	offset, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be an integer")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.defaultPageSize)))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "size must be an integer")
		return
	}

	items, err := h.service.ListByOwner(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	i, err := h.service.SetAvailability(c.Request.Context(), userID, id, *req.Available)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": i})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		logger.ErrorLogger.Errorf("item request failed path=%s error=%v", c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process item request")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item ID")
		return 0, false
	}
	return id, true
}
