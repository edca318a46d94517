package router

import (
	"fitclub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupOrganizationRoutes sets up the organization routes.
func SetupOrganizationRoutes(authenticatedGroup *gin.RouterGroup, orgHandler *handlers.OrganizationHandler) {
	orgRoutes := authenticatedGroup.Group("/organizations")
	{
		orgRoutes.POST("", orgHandler.CreateOrganization)
		orgRoutes.GET("/me", orgHandler.GetMyOrganization)
		orgRoutes.PUT("/me", orgHandler.UpdateMyOrganization)
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, membershipHandler *handlers.MembershipHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.GET("/:id/packages", membershipHandler.GetClientPackageHistory)
	}
}

// SetupPackageRoutes sets up the package catalog routes.
func SetupPackageRoutes(authenticatedGroup *gin.RouterGroup, packageHandler *handlers.PackageHandler) {
	packageRoutes := authenticatedGroup.Group("/packages")
	{
		packageRoutes.POST("", packageHandler.CreatePackage)
		packageRoutes.GET("", packageHandler.GetPackages)
		packageRoutes.GET("/:id", packageHandler.GetPackageByID)
		packageRoutes.PUT("/:id", packageHandler.UpdatePackage)
		packageRoutes.DELETE("/:id", packageHandler.DeletePackage)
	}
}

// SetupMembershipRoutes sets up the package assignment routes.
func SetupMembershipRoutes(authenticatedGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := authenticatedGroup.Group("/client-packages")
	{
		membershipRoutes.POST("", membershipHandler.AssignPackage)
		membershipRoutes.GET("", membershipHandler.GetClientPackages)
		membershipRoutes.POST("/sync", membershipHandler.SyncPackageStatuses)
	}
}

// SetupCheckInRoutes sets up the front-desk check-in routes.
func SetupCheckInRoutes(authenticatedGroup *gin.RouterGroup, checkInHandler *handlers.CheckInHandler) {
	checkInRoutes := authenticatedGroup.Group("/checkin")
	{
		checkInRoutes.POST("", checkInHandler.CheckIn)
		checkInRoutes.GET("/recent", checkInHandler.GetRecentCheckIns)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetDashboardStats)
		dashboardRoutes.GET("/recent-clients", dashboardHandler.GetRecentClients)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/revenue", dashboardHandler.GetRevenueReport)
	}
}
