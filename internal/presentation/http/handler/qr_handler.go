package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/application/service"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/response"
)

// QRHandler handles QR code generation and the scan trigger relay
type QRHandler struct {
	qrService *service.QRService
}

// NewQRHandler creates a new QR handler
func NewQRHandler(qrService *service.QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

// ProductQR renders a product's self-serve URL as a PNG QR code
func (h *QRHandler) ProductQR(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	size := service.DefaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 1024 {
			response.BadRequest(c, "Size must be between 1 and 1024")
			return
		}
		size = parsed
	}

	png, err := h.qrService.GenerateProductQR(c.Request.Context(), id, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "image/png", png)
}

// Trigger records a QR scan so the counter screen opens the sale modal
func (h *QRHandler) Trigger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	trigger, err := h.qrService.TriggerProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Trigger recorded", trigger)
}

// CheckTriggers returns the oldest pending scan for the counter screen
func (h *QRHandler) CheckTriggers(c *gin.Context) {
	trigger := h.qrService.CheckTriggers()
	if trigger == nil {
		response.OK(c, "No pending triggers", nil)
		return
	}

	response.OK(c, "Trigger retrieved", trigger)
}
