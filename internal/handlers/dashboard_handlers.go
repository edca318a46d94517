package handlers

import (
	"net/http"
	"strconv"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/services"
	"fitclub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the stats service.
type DashboardHandler struct {
	statsService services.StatsService
	orgService   services.OrganizationService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ss services.StatsService, os services.OrganizationService) *DashboardHandler {
	return &DashboardHandler{statsService: ss, orgService: os}
}

// GetDashboardStats returns the dashboard counters for the caller's organization.
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	stats, err := h.statsService.GetDashboardStats(org.ID)
	if err != nil {
		utils.LogError(err, "GetDashboardStats: Error from statsService.GetDashboardStats")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute dashboard stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRecentClients lists the organization's newest clients. ?limit= caps the
// listing, default 5 to match the dashboard card.
func (h *DashboardHandler) GetRecentClients(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "limit must be a positive integer.", ""))
			return
		}
		limit = parsed
	}

	clients := make([]models.Client, 0, limit)
	for client := range h.statsService.RecentClients(org.ID, limit) {
		clients = append(clients, client)
	}
	c.JSON(http.StatusOK, gin.H{"data": clients, "total": len(clients)})
}

const reportDateLayout = "2006-01-02"

// GetRevenueReport sums catalog prices over the requested window. ?from= and
// ?to= take YYYY-MM-DD; omitted bounds default to the current calendar month
// in the organization's timezone.
func (h *DashboardHandler) GetRevenueReport(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	loc := org.Location()
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, loc)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid from date, use YYYY-MM-DD.", err.Error()))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, loc)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid to date, use YYYY-MM-DD.", err.Error()))
			return
		}
		// Upper bound is exclusive; include the whole requested day.
		to = parsed.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "to date precedes from date.", ""))
		return
	}

	revenue, err := h.statsService.GetRevenueStats(org.ID, from, to)
	if err != nil {
		utils.LogError(err, "GetRevenueReport: Error from statsService.GetRevenueStats")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute revenue report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, revenue)
}
