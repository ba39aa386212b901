package router

import (
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/config"
	"github.com/Nikjeremic/potrosnjaSmole/internal/handler"
	"github.com/Nikjeremic/potrosnjaSmole/internal/infra"
	"github.com/Nikjeremic/potrosnjaSmole/internal/middleware"
	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"
	"github.com/Nikjeremic/potrosnjaSmole/internal/service"
	"github.com/Nikjeremic/potrosnjaSmole/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Ledger/Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	pdfGen := infra.NewPDFGenerator()

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	resinRepo := repository.NewResinRepository(db)
	consumptionRepo := repository.NewConsumptionRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	disposalRepo := repository.NewDisposalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ledger := service.NewStockLedger(materialRepo, inventoryRepo, dispatcher, cfg.AlertThreshold())

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour)
	materialSvc := service.NewMaterialService(materialRepo, inventoryRepo, resinRepo, consumptionRepo, receiptRepo, disposalRepo, ledger)
	inventorySvc := service.NewInventoryService(inventoryRepo, materialRepo)
	resinSvc := service.NewResinService(resinRepo, materialRepo)
	consumptionSvc := service.NewConsumptionService(consumptionRepo, resinRepo, ledger)
	receiptSvc := service.NewReceiptService(receiptRepo, materialRepo, ledger, pdfGen)
	disposalSvc := service.NewDisposalService(disposalRepo, materialRepo, ledger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	materialsH := handler.NewMaterialsHandler(materialSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	resinsH := handler.NewResinsHandler(resinSvc)
	consumptionH := handler.NewConsumptionHandler(consumptionSvc)
	receiptsH := handler.NewReceiptsHandler(receiptSvc)
	disposalsH := handler.NewDisposalsHandler(disposalSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/api/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		// Current-user lookup; the front-end restores its session from this.
		api.GET("/auth/me", authH.Me)

		materials := api.Group("/materials")
		{
			materials.POST("", materialsH.Create)
			materials.GET("", materialsH.List)
			materials.GET("/:id", materialsH.GetByID)
			materials.PUT("/:id", materialsH.Update)
			materials.DELETE("/:id", materialsH.Delete)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("", inventoryH.List)
			inventory.GET("/material/:materialId", inventoryH.GetByMaterialID)
			inventory.POST("/material/:materialId", inventoryH.CreateForMaterial)
			inventory.PUT("/material/:materialId", inventoryH.UpdateByMaterialID)
			inventory.DELETE("/material/:materialId", inventoryH.DeleteByMaterialID)
			inventory.DELETE("/:id", inventoryH.DeleteByID)
		}

		resins := api.Group("/resins")
		{
			resins.POST("", resinsH.Create)
			resins.GET("", resinsH.List)
			resins.GET("/:id", resinsH.GetByID)
			resins.PUT("/:id", resinsH.Update)
			resins.DELETE("/:id", resinsH.Delete)
		}

		consumption := api.Group("/consumption")
		{
			consumption.POST("", consumptionH.Create)
			consumption.GET("", consumptionH.List)
			consumption.GET("/:id", consumptionH.GetByID)
			consumption.PUT("/:id", consumptionH.Update)
			consumption.DELETE("/:id", consumptionH.Delete)
		}

		receipts := api.Group("/receipts")
		{
			receipts.POST("", receiptsH.Create)
			receipts.GET("", receiptsH.List)
			receipts.GET("/:id", receiptsH.GetByID)
			receipts.GET("/:id/pdf", receiptsH.DownloadPDF)
			receipts.GET("/material/:materialId", receiptsH.ListByMaterialID)
			receipts.PUT("/:id", receiptsH.Update)
			receipts.DELETE("/:id", receiptsH.Delete)
		}

		disposals := api.Group("/disposals")
		{
			disposals.POST("", disposalsH.Create)
			disposals.GET("", disposalsH.List)
			disposals.GET("/:id", disposalsH.GetByID)
			disposals.GET("/material/:materialId", disposalsH.ListByMaterialID)
			disposals.GET("/reason/:reason", disposalsH.ListByReason)
			disposals.PUT("/:id", disposalsH.Update)
			disposals.DELETE("/:id", disposalsH.Delete)
		}

		// User administration — admin only
		users := api.Group("/users", middleware.RequireAdmin())
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.GetByID)
			users.PUT("/:id", usersH.Update)
			users.PUT("/:id/reset-password", usersH.ResetPassword)
			users.DELETE("/:id", usersH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
