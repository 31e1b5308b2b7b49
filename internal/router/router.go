package router

import (
	"time"

	"rentalbaju/internal/config"
	"rentalbaju/internal/handler"
	"rentalbaju/internal/middleware"
	"rentalbaju/internal/repository"
	"rentalbaju/internal/service"
	"rentalbaju/internal/storage"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/S3
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store storage.ObjectStorage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.MaxUploadMB > 0 {
		r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20
	}

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	colorRepo := repository.NewColorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg, log.With().Str("component", "auth").Logger())
	uploadSvc := service.NewUploadService(store, log.With().Str("component", "upload").Logger())
	productSvc := service.NewProductService(productRepo, categoryRepo, uploadSvc, rdb,
		log.With().Str("component", "product").Logger())
	categorySvc := service.NewCategoryService(categoryRepo, productRepo,
		log.With().Str("component", "category").Logger())
	materialSvc := service.NewMaterialService(materialRepo, productRepo,
		log.With().Str("component", "material").Logger())
	colorSvc := service.NewColorService(colorRepo, productRepo,
		log.With().Str("component", "color").Logger())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	materialsH := handler.NewMaterialsHandler(materialSvc)
	colorsH := handler.NewColorsHandler(colorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Reads: any authenticated role; writes: admin only.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		readRoles := middleware.RequireRole("admin", "staff")
		adminOnly := middleware.RequireRole("admin")

		v1.GET("/products", readRoles, productsH.List)
		v1.GET("/products/:id", readRoles, productsH.GetByID)
		v1.PATCH("/products/:id/status", readRoles, productsH.UpdateStatus)
		products := v1.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		v1.GET("/categories", readRoles, categoriesH.List)
		v1.GET("/categories/:id", readRoles, categoriesH.GetByID)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		v1.GET("/materials", readRoles, materialsH.List)
		v1.GET("/materials/:id", readRoles, materialsH.GetByID)
		materials := v1.Group("/materials", adminOnly)
		{
			materials.POST("", materialsH.Create)
			materials.PUT("/:id", materialsH.Update)
			materials.DELETE("/:id", materialsH.Delete)
			materials.PATCH("/:id/reactivate", materialsH.Reactivate)
		}

		v1.GET("/colors", readRoles, colorsH.List)
		v1.GET("/colors/:id", readRoles, colorsH.GetByID)
		colors := v1.Group("/colors", adminOnly)
		{
			colors.POST("", colorsH.Create)
			colors.PUT("/:id", colorsH.Update)
			colors.DELETE("/:id", colorsH.Delete)
			colors.PATCH("/:id/reactivate", colorsH.Reactivate)
		}

		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
