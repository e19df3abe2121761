package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleet/internal/handler"
	"fleet/internal/middleware"
	"fleet/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService        *service.AuthService
	AuthHandler        *handler.AuthHandler
	RentalHandler      *handler.RentalHandler
	VehicleHandler     *handler.VehicleHandler
	DriverHandler      *handler.DriverHandler
	DepartmentHandler  *handler.DepartmentHandler
	FineHandler        *handler.FineHandler
	MaintenanceHandler *handler.MaintenanceHandler
	ReportHandler      *handler.ReportHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
// Reads require authentication; writes additionally require an admin token.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")

	// Auth routes are public.
	auth := v1.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(deps.AuthService))
	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		// Rental routes.
		authed.GET("/rentals", deps.RentalHandler.GetAll)
		authed.GET("/rentals/:id", deps.RentalHandler.GetRental)
		admin.POST("/rentals", deps.RentalHandler.CreateRental)
		admin.PUT("/rentals/:id", deps.RentalHandler.UpdateRental)
		admin.DELETE("/rentals/:id", deps.RentalHandler.DeleteRental)

		// Vehicle routes.
		authed.GET("/vehicles", deps.VehicleHandler.GetAll)
		authed.GET("/vehicles/:id", deps.VehicleHandler.Get)
		admin.POST("/vehicles", deps.VehicleHandler.Create)
		admin.PUT("/vehicles/:id", deps.VehicleHandler.Update)
		admin.DELETE("/vehicles/:id", deps.VehicleHandler.Delete)

		// Driver routes.
		authed.GET("/drivers", deps.DriverHandler.GetAll)
		authed.GET("/drivers/:id", deps.DriverHandler.Get)
		admin.POST("/drivers", deps.DriverHandler.Create)
		admin.PUT("/drivers/:id", deps.DriverHandler.Update)
		admin.DELETE("/drivers/:id", deps.DriverHandler.Delete)

		// Department routes.
		authed.GET("/departments", deps.DepartmentHandler.GetAll)
		authed.GET("/departments/:id", deps.DepartmentHandler.Get)
		admin.POST("/departments", deps.DepartmentHandler.Create)
		admin.PUT("/departments/:id", deps.DepartmentHandler.Update)
		admin.DELETE("/departments/:id", deps.DepartmentHandler.Delete)

		// Fine routes.
		authed.GET("/fines", deps.FineHandler.GetAll)
		authed.GET("/fines/:id", deps.FineHandler.Get)
		admin.POST("/fines", deps.FineHandler.Create)
		admin.PUT("/fines/:id", deps.FineHandler.Update)
		admin.DELETE("/fines/:id", deps.FineHandler.Delete)

		// Maintenance routes.
		authed.GET("/maintenance", deps.MaintenanceHandler.GetAll)
		authed.GET("/maintenance/:id", deps.MaintenanceHandler.Get)
		admin.POST("/maintenance", deps.MaintenanceHandler.Create)
		admin.PUT("/maintenance/:id", deps.MaintenanceHandler.Update)
		admin.DELETE("/maintenance/:id", deps.MaintenanceHandler.Delete)

		// Report routes.
		reports := authed.Group("/reports")
		{
			reports.GET("/vehicle-costs", deps.ReportHandler.VehicleCosts)
			reports.GET("/vehicle-km", deps.ReportHandler.VehicleKilometers)
			reports.GET("/driver-fines", deps.ReportHandler.DriverFines)
			reports.GET("/driver-rentals", deps.ReportHandler.DriverRentals)
			reports.GET("/summary", deps.ReportHandler.Summary)
		}
	}

	return router
}
