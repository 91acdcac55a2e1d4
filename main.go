package main

import (
	"log"
	"os"

	"kjejekaj/cmd"
	"kjejekaj/internal/core/container"
	"kjejekaj/internal/core/logger"
	"kjejekaj/internal/core/routes"
	"kjejekaj/internal/database"
	"kjejekaj/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Subcommands (migrate, seed) run instead of the server.
	if len(os.Args) > 1 {
		cmd.Execute()
		return
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("Could not connect to the database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Connected to the database successfully")

	go middleware.MonitorDatabase(db)

	appContainer := container.NewAppContainer(db, appLogger)

	router := gin.New()
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}
