package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/elomAglan/Gestion-de-vente/internal/handler"
	mid "github.com/elomAglan/Gestion-de-vente/internal/middleware"
	"github.com/elomAglan/Gestion-de-vente/internal/sale"
	"github.com/elomAglan/Gestion-de-vente/pkg/config"
	"github.com/elomAglan/Gestion-de-vente/pkg/database"
	"github.com/elomAglan/Gestion-de-vente/pkg/jwtutil"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
	"github.com/elomAglan/Gestion-de-vente/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: "gestock-api",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting gestock-api",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize database
	db, err := database.Connect(&appConfig.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire dependencies
	jwt := jwtutil.NewJWTUtil(&appConfig.JWT)
	processor := sale.NewProcessor(sale.NewStore(db), log)

	authHandler := handler.NewAuthHandler(db, jwt)
	userHandler := handler.NewUserHandler(db)
	productHandler := handler.NewProductHandler(db)
	movementHandler := handler.NewMovementHandler(db)
	saleHandler := handler.NewSaleHandler(db, processor)
	reportHandler := handler.NewReportHandler(db)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     appConfig.CORS.AllowOrigins,
		AllowMethods:     []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowCredentials: true,
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Authentication routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", authHandler.Register)
	authAPI.POST("/login", authHandler.Login)
	authAPI.GET("/validate", authHandler.Validate, mid.AuthMiddleware(jwt))

	auth := mid.AuthMiddleware(jwt)

	// User API routes
	userAPI := e.Group("/api/users", auth)
	userAPI.GET("", userHandler.ListUsers)
	userAPI.GET("/profile", userHandler.Profile)
	userAPI.PUT("/:id", userHandler.UpdateRole)
	userAPI.DELETE("/:id", userHandler.DeleteUser)

	// Product API routes
	productAPI := e.Group("/api/products", auth)
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.PUT("/:id", productHandler.UpdateQuantity)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	// Stock movement API routes
	movementAPI := e.Group("/api/movements", auth)
	movementAPI.GET("", movementHandler.ListMovements)
	movementAPI.POST("", movementHandler.CreateMovement)
	movementAPI.DELETE("", movementHandler.ClearMovements)

	// Sale API routes
	saleAPI := e.Group("/api/sales", auth)
	saleAPI.GET("", saleHandler.ListSales)
	saleAPI.POST("", saleHandler.CreateSales)

	// Dashboard summary
	e.GET("/api/summary", reportHandler.Summary, auth)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
