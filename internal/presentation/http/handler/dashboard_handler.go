package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zymoune/feedstore-api/internal/application/service"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Shop handles the customer shop view
func (h *DashboardHandler) Shop(c *gin.Context) {
	dashboard, err := h.dashboardService.GetCustomerDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop retrieved successfully", dashboard)
}

// Admin handles the management overview
func (h *DashboardHandler) Admin(c *gin.Context) {
	dashboard, err := h.dashboardService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
