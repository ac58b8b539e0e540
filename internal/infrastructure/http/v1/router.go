// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"laundrydesk/internal/domain/auth"
	"laundrydesk/internal/domain/backfill"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/infrastructure/http/v1/dto"
	"laundrydesk/internal/infrastructure/http/v1/handlers"
	"laundrydesk/internal/infrastructure/http/v1/middleware"
	"laundrydesk/internal/infrastructure/storage/postgres"
	"laundrydesk/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Pool is the database pool for health checks, nil for the in-memory store
	Pool *postgres.Pool

	// Version is reported by /health/info
	Version string

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	Hotels   *hotel.Service
	Services *laundry.Service
	Finance  *finance.Service
	Backfill *backfill.Engine

	// Debug enables gin debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.RequireRole(auth.RoleAdmin))

		registerCatalogRoutes(protected, cfg)
		registerZoneRoutes(protected, cfg)
		registerServiceRoutes(protected, cfg)
		registerTransactionRoutes(protected, cfg)
		registerMigrationRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}
	authHandler := handlers.NewAuthHandler(handlers.NewBaseHandler(), cfg.AuthService)
	rg.POST("/auth/login", authHandler.Login)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- HOTELS ---
	{
		handler := handlers.NewCatalogHandler(baseHandler,
			handlers.CatalogHandlerConfig[*hotel.Hotel, dto.CreateHotelRequest, dto.UpdateHotelRequest]{
				Service:      cfg.Hotels.CatalogService,
				MapCreateDTO: dto.CreateHotelRequest.ToEntity,
				MapUpdateDTO: dto.UpdateHotelRequest.ApplyTo,
				MapToDTO:     dto.FromHotel,
			})
		RegisterCatalogRoutes(catalogs.Group("/hotels"), handler)
	}
}

// registerZoneRoutes registers the zone table, classifier and price quote.
func registerZoneRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewZoneHandler(handlers.NewBaseHandler(), cfg.Hotels)

	rg.GET("/zones", handler.List)
	rg.POST("/zones/classify", handler.Classify)
	rg.POST("/pricing/quote", handler.Quote)
}

// registerServiceRoutes registers laundry service endpoints.
func registerServiceRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewServiceHandler(handlers.NewBaseHandler(), cfg.Services)

	services := rg.Group("/services")
	services.GET("", handler.List)
	services.POST("", handler.Register)
	services.GET("/:id", handler.Get)
	services.PATCH("/:id/status", handler.UpdateStatus)
}

// registerTransactionRoutes registers ledger endpoints.
func registerTransactionRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewTransactionHandler(handlers.NewBaseHandler(), cfg.Finance)

	transactions := rg.Group("/transactions")
	transactions.GET("", handler.List)
	transactions.GET("/summary", handler.Summary)
	transactions.GET("/:id", handler.Get)
	transactions.POST("/income", handler.RecordIncome)
	transactions.POST("/expense", handler.RecordExpense)
}

// registerMigrationRoutes registers financial backfill endpoints.
func registerMigrationRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewMigrationHandler(handlers.NewBaseHandler(), cfg.Backfill)

	migration := rg.Group("/migration")
	migration.GET("/preview", handler.Preview)
	migration.POST("/run", handler.Run)
	migration.GET("/history", handler.History)
}
