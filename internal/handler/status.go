package handler

import (
	"net/http"

	"digital_market/internal/service"
	"digital_market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	statusService service.StatusService
	log           logger.Logger
}

func NewStatusHandler(statusService service.StatusService, log logger.Logger) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		log:           log,
	}
}

type CreateStatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func (h *StatusHandler) Create(c *gin.Context) {
	var req CreateStatusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	check, err := h.statusService.Create(c.Request.Context(), req.ClientName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) List(c *gin.Context) {
	checks, err := h.statusService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, checks)
}
