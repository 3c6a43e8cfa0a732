package router

import (
	"time"

	"github.com/SallyAnnCreed/Costing-App/internal/config"
	"github.com/SallyAnnCreed/Costing-App/internal/handler"
	"github.com/SallyAnnCreed/Costing-App/internal/middleware"
	"github.com/SallyAnnCreed/Costing-App/internal/repository"
	"github.com/SallyAnnCreed/Costing-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	packagingRepo := repository.NewPackagingRepository(db)
	rawMaterialRepo := repository.NewRawMaterialRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogs := service.NewCatalogCache(labelRepo, packagingRepo, rawMaterialRepo, rdb, cfg.CatalogCacheTTL)
	productSvc := service.NewProductService(productRepo, archiveRepo, catalogs)
	catalogSvc := service.NewCatalogService(labelRepo, packagingRepo, rawMaterialRepo, productRepo, catalogs)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	archiveH := handler.NewArchiveHandler(productSvc)
	catalogsH := handler.NewCatalogsHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)

			products.POST("/:id/recalculate", productsH.Recalculate)
			products.PATCH("/:id/label", productsH.SetLabel)
			products.PATCH("/:id/packaging", productsH.SetPackaging)
			products.PATCH("/:id/insert", productsH.ToggleInsert)
			products.PATCH("/:id/selling-price", productsH.SetSellingPrice)
			products.PATCH("/:id/note", productsH.SetNote)

			products.POST("/:id/bom", productsH.AddBOMLine)
			products.PUT("/:id/bom/:index", productsH.UpdateBOMLine)
			products.DELETE("/:id/bom/:index", productsH.RemoveBOMLine)

			products.POST("/:id/archive", productsH.Archive)
		}

		archive := v1.Group("/archive")
		{
			archive.GET("", archiveH.List)
			archive.POST("/:id/restore", archiveH.Restore)
			archive.DELETE("/:id", archiveH.Delete)
		}

		labels := v1.Group("/labels")
		{
			labels.GET("", catalogsH.ListLabels)
			labels.POST("", catalogsH.CreateLabel)
			labels.PUT("/:id", catalogsH.UpdateLabel)
			labels.DELETE("/:id", catalogsH.DeleteLabel)
		}

		packaging := v1.Group("/packaging")
		{
			packaging.GET("", catalogsH.ListPackaging)
			packaging.POST("", catalogsH.CreatePackaging)
			packaging.PUT("/:id", catalogsH.UpdatePackaging)
			packaging.POST("/:id/extras", catalogsH.AddPackagingExtra)
			packaging.DELETE("/:id", catalogsH.DeletePackaging)
		}

		rawMaterials := v1.Group("/raw-materials")
		{
			rawMaterials.GET("", catalogsH.ListRawMaterials)
			rawMaterials.POST("", catalogsH.CreateRawMaterial)
			rawMaterials.PUT("/:id", catalogsH.UpdateRawMaterial)
			rawMaterials.PATCH("/:id/measurement", catalogsH.SetMeasurement)
			rawMaterials.DELETE("/:id", catalogsH.DeleteRawMaterial)
		}
	}

	return r
}
