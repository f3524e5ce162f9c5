package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the shop aggregate for a window. Defaults to the last
// 30 days.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if fromStr := c.Query("from"); fromStr != "" {
		if parsed, err := time.Parse(time.RFC3339, fromStr); err == nil {
			from = parsed
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if parsed, err := time.Parse(time.RFC3339, toStr); err == nil {
			to = parsed
		}
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}
