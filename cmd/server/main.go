package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"fitclub_backend/internal/database"
	approuter "fitclub_backend/internal/router"
	"fitclub_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("No .env file loaded", map[string]interface{}{"reason": err.Error()})
	}

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "fitclub_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "fitclub_password")
	dbName := utils.Getenv("DB_NAME", "fitclub_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	dbConn := database.GetDB()
	membershipService := approuter.Setup(engine, dbConn)

	// Periodic lifecycle sweep: re-derive package statuses for every
	// organization so expirations land without waiting for a request.
	sweepMinutes, err := strconv.Atoi(utils.Getenv("STATUS_SYNC_INTERVAL_MINUTES", "60"))
	if err != nil || sweepMinutes <= 0 {
		sweepMinutes = 60
	}
	go func() {
		ticker := time.NewTicker(time.Duration(sweepMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := membershipService.SyncAllPackageStatuses(); err != nil {
				utils.LogError(err, "Periodic package status sweep failed")
			}
		}
	}()

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
