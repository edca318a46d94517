package handlers

import (
	"errors"
	"net/http"

	"fitclub_backend/internal/services"
	"fitclub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PackageHandler holds the package catalog service.
type PackageHandler struct {
	packageService services.PackageService
	orgService     services.OrganizationService
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(ps services.PackageService, os services.OrganizationService) *PackageHandler {
	return &PackageHandler{packageService: ps, orgService: os}
}

// CreatePackage handles adding a package to the organization's catalog.
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	var req services.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePackage: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	pkg, err := h.packageService.CreatePackage(org.ID, req)
	if err != nil {
		utils.LogError(err, "CreatePackage: Error from packageService.CreatePackage")
		if errors.Is(err, services.ErrPackageValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create package.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

// GetPackages handles fetching the organization's package catalog.
func (h *PackageHandler) GetPackages(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	packages, err := h.packageService.GetPackagesByOrg(org.ID)
	if err != nil {
		utils.LogError(err, "GetPackages: Error from packageService.GetPackagesByOrg")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch packages.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": packages, "total": len(packages)})
}

// GetPackageByID handles fetching a single catalog package.
func (h *PackageHandler) GetPackageByID(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	packageID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid package ID format.", err.Error()))
		return
	}

	pkg, err := h.packageService.GetPackageByID(packageID)
	if err != nil {
		utils.LogError(err, "GetPackageByID: Error from packageService.GetPackageByID")
		if errors.Is(err, services.ErrPackageNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch package.", "Internal error"))
		}
		return
	}
	if pkg.OrgID != org.ID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found.", ""))
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// UpdatePackage handles updating a catalog package.
func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	packageID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid package ID format.", err.Error()))
		return
	}

	var req services.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdatePackage: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	existing, err := h.packageService.GetPackageByID(packageID)
	if err != nil || existing.OrgID != org.ID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found to update.", ""))
		return
	}

	pkg, err := h.packageService.UpdatePackage(packageID, req)
	if err != nil {
		utils.LogError(err, "UpdatePackage: Error from packageService.UpdatePackage")
		if errors.Is(err, services.ErrPackageNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrPackageValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update package.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// DeletePackage handles deleting a catalog package.
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	org, ok := resolveOrg(c, h.orgService)
	if !ok {
		return
	}

	packageID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid package ID format.", err.Error()))
		return
	}

	existing, err := h.packageService.GetPackageByID(packageID)
	if err != nil || existing.OrgID != org.ID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found to delete.", ""))
		return
	}

	if err := h.packageService.DeletePackage(packageID); err != nil {
		utils.LogError(err, "DeletePackage: Error from packageService.DeletePackage")
		if errors.Is(err, services.ErrPackageNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Package not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrPackageInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Package cannot be deleted as it is assigned to clients.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete package.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
