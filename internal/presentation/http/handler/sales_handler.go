package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/application/service"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/request"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/response"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SalesHandler handles self-serve sales and analytics HTTP requests
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Record handles the public QR sale endpoint
func (h *SalesHandler) Record(c *gin.Context) {
	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.salesService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Unit:          enum.SaleUnit(req.Unit),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// List handles listing sales
func (h *SalesHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.ProductID != "" {
		productID, err := uuid.Parse(filter.ProductID)
		if err == nil {
			params.ProductID = &productID
		}
	}
	if start, ok := parseDate(filter.StartDate); ok {
		params.StartDate = &start
	}
	if end, ok := parseDate(filter.EndDate); ok {
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &endOfDay
	}

	result, err := h.salesService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a single sale
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.salesService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Analytics handles the merged sales report. The window defaults to the last
// 30 days.
func (h *SalesHandler) Analytics(c *gin.Context) {
	var req request.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if parsed, ok := parseDate(req.StartDate); ok {
		start = parsed
	}
	if parsed, ok := parseDate(req.EndDate); ok {
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		response.BadRequest(c, "End date must be after start date")
		return
	}

	report, err := h.salesService.Analytics(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analytics retrieved successfully", report)
}

// Daily handles the single-day sales report. Defaults to today.
func (h *SalesHandler) Daily(c *gin.Context) {
	day := time.Now()
	if parsed, ok := parseDate(c.Query("date")); ok {
		day = parsed
	}

	report, err := h.salesService.DailySales(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", report)
}

// RecalculateProduct handles recalculating stored costs for one product
func (h *SalesHandler) RecalculateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.salesService.RecalculateForProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales recalculated successfully", result)
}

// RecalculateAll handles recalculating stored costs for every sale
func (h *SalesHandler) RecalculateAll(c *gin.Context) {
	result, err := h.salesService.RecalculateAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales recalculated successfully", result)
}

// Reset handles deleting every sale record
func (h *SalesHandler) Reset(c *gin.Context) {
	if err := h.salesService.ResetAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales reset successfully", nil)
}

// parseDate parses a YYYY-MM-DD query value
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
