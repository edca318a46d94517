package handlers

import (
	"errors"
	"net/http"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/services"
	"fitclub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
	clientService     services.ClientService
	orgService        services.OrganizationService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService, cs services.ClientService, os services.OrganizationService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms, clientService: cs, orgService: os}
}

// AssignPackage handles assigning a catalog package to a client.
func (h *MembershipHandler) AssignPackage(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	var req services.AssignPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AssignPackage: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.GetClientByID(req.ClientID)
	if err != nil || client.OrgID != org.ID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
		return
	}

	assignment, err := h.membershipService.AssignPackage(req)
	if err != nil {
		utils.LogError(err, "AssignPackage: Error from membershipService.AssignPackage")
		if errors.Is(err, services.ErrClientNotFound) || errors.Is(err, services.ErrAssignedPackageMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Referenced client or package not found.", err.Error()))
		} else if errors.Is(err, services.ErrAssignmentValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to assign package.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// GetClientPackages handles listing the organization's package assignments,
// optionally filtered by lifecycle status via ?status=.
func (h *MembershipHandler) GetClientPackages(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	var status *models.PackageStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PackageStatus(raw)
		if !models.IsValidPackageStatus(s) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unknown status filter: "+raw, ""))
			return
		}
		status = &s
	}

	assignments, err := h.membershipService.GetClientPackagesByOrg(org.ID, status)
	if err != nil {
		utils.LogError(err, "GetClientPackages: Error from membershipService.GetClientPackagesByOrg")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client packages.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignments, "total": len(assignments)})
}

// GetClientPackageHistory handles listing one client's package history.
func (h *MembershipHandler) GetClientPackageHistory(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	clientID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil || client.OrgID != org.ID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
		return
	}

	assignments, err := h.membershipService.GetClientPackagesByClient(clientID)
	if err != nil {
		utils.LogError(err, "GetClientPackageHistory: Error from membershipService.GetClientPackagesByClient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch package history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignments, "total": len(assignments)})
}

// SyncPackageStatuses runs the lifecycle synchronizer for the caller's
// organization and reports how many rows changed.
func (h *MembershipHandler) SyncPackageStatuses(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	updated, err := h.membershipService.SyncPackageStatuses(org.ID)
	if err != nil {
		utils.LogError(err, "SyncPackageStatuses: Error from membershipService.SyncPackageStatuses")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Status synchronization failed.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
