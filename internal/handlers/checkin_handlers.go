package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fitclub_backend/internal/services"
	"fitclub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CheckInHandler holds the check-in service.
type CheckInHandler struct {
	checkInService services.CheckInService
	orgService     services.OrganizationService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(cis services.CheckInService, os services.OrganizationService) *CheckInHandler {
	return &CheckInHandler{checkInService: cis, orgService: os}
}

type checkInRequest struct {
	Token  string `json:"token" binding:"required"`
	Method string `json:"method"`
}

// CheckIn resolves a front-desk token to a client and records the visit.
// An unmatched token is a 404; a matched client whose attendance write fails
// is a 500, because the visit was not recorded.
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CheckIn: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.checkInService.CheckIn(org.ID, req.Token, req.Method)
	if err != nil {
		if errors.Is(err, services.ErrCheckInClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No client matches the provided token.", ""))
			return
		}
		utils.LogError(err, "CheckIn: Error from checkInService.CheckIn")
		if errors.Is(err, services.ErrCheckInValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record check-in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetRecentCheckIns lists the organization's latest attendance entries,
// newest first. ?limit= caps the listing, default 10.
func (h *CheckInHandler) GetRecentCheckIns(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "limit must be a positive integer.", ""))
			return
		}
		limit = parsed
	}

	records, err := h.checkInService.RecentCheckIns(org.ID, limit)
	if err != nil {
		utils.LogError(err, "GetRecentCheckIns: Error from checkInService.RecentCheckIns")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recent check-ins.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "total": len(records)})
}
