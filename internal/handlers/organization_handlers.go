package handlers

import (
	"errors"
	"net/http"

	"fitclub_backend/internal/middleware"
	"fitclub_backend/internal/models"
	"fitclub_backend/internal/services"
	"fitclub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler holds the organization service.
type OrganizationHandler struct {
	orgService services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(os services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: os}
}

// resolveOrg maps the authenticated caller to their organization. Every
// org-scoped handler goes through this; a caller without an organization gets
// a 404 and false is returned.
func resolveOrg(c *gin.Context, orgService services.OrganizationService) (*models.Organization, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authenticated user.", ""))
		return nil, false
	}

	org, err := orgService.GetOrganizationByOwner(userID)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No organization for this user. Create one first.", ""))
		} else {
			utils.LogError(err, "resolveOrg: Error from orgService.GetOrganizationByOwner")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resolve organization.", "Internal error"))
		}
		return nil, false
	}
	return org, true
}

// CreateOrganization handles the signup-time creation of the caller's organization.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authenticated user.", ""))
		return
	}

	var req services.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrganization: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	org, err := h.orgService.CreateOrganization(userID, req)
	if err != nil {
		utils.LogError(err, "CreateOrganization: Error from orgService.CreateOrganization")
		if errors.Is(err, services.ErrOrganizationExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "User already owns an organization.", err.Error()))
		} else if errors.Is(err, services.ErrOrganizationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create organization.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, org)
}

// GetMyOrganization returns the caller's organization.
func (h *OrganizationHandler) GetMyOrganization(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateMyOrganization updates the caller's organization.
func (h *OrganizationHandler) UpdateMyOrganization(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authenticated user.", ""))
		return
	}

	var req services.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMyOrganization: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	org, err := h.orgService.UpdateOrganization(userID, req)
	if err != nil {
		utils.LogError(err, "UpdateMyOrganization: Error from orgService.UpdateOrganization")
		if errors.Is(err, services.ErrOrganizationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Organization not found.", err.Error()))
		} else if errors.Is(err, services.ErrOrganizationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update organization.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, org)
}
