package router

import (
	"database/sql"

	"fitclub_backend/internal/handlers"
	"fitclub_backend/internal/middleware"
	"fitclub_backend/internal/repositories"
	"fitclub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) services.MembershipService {
	// Initialize Repositories
	orgRepo := repositories.NewOrganizationRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	packageRepo := repositories.NewPackageCatalogRepository(db)
	clientPackageRepo := repositories.NewClientPackageRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Initialize Services
	orgService := services.NewOrganizationService(orgRepo, db)
	clientService := services.NewClientService(clientRepo, db)
	packageService := services.NewPackageService(packageRepo, db)
	membershipService := services.NewMembershipService(clientPackageRepo, packageRepo, clientRepo, orgRepo, db)
	checkInService := services.NewCheckInService(clientRepo, attendanceRepo, db)
	statsService := services.NewStatsService(statsRepo, clientRepo, orgRepo, services.StatsFailSoft)

	// Initialize Handlers
	orgHandler := handlers.NewOrganizationHandler(orgService)
	clientHandler := handlers.NewClientHandler(clientService, orgService)
	packageHandler := handlers.NewPackageHandler(packageService, orgService)
	membershipHandler := handlers.NewMembershipHandler(membershipService, clientService, orgService)
	checkInHandler := handlers.NewCheckInHandler(checkInService, orgService)
	dashboardHandler := handlers.NewDashboardHandler(statsService, orgService)

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupOrganizationRoutes(authenticated, orgHandler)
		SetupClientRoutes(authenticated, clientHandler, membershipHandler)
		SetupPackageRoutes(authenticated, packageHandler)
		SetupMembershipRoutes(authenticated, membershipHandler)
		SetupCheckInRoutes(authenticated, checkInHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupReportRoutes(authenticated, dashboardHandler)
	}

	return membershipService
}
