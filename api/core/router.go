package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api"
	"github.com/space458/gallery-backend/api/common"
	handlerBanners "github.com/space458/gallery-backend/api/handler/banners"
	handlerContact "github.com/space458/gallery-backend/api/handler/contact"
	handlerExhibitions "github.com/space458/gallery-backend/api/handler/exhibitions"
	handlerGallery "github.com/space458/gallery-backend/api/handler/gallery"
	handlerImages "github.com/space458/gallery-backend/api/handler/images"
	handlerNews "github.com/space458/gallery-backend/api/handler/news"
	"github.com/space458/gallery-backend/api/middleware"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/config"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	exhibitionsrepo "github.com/space458/gallery-backend/database/repo/exhibitions"
	galleryrepo "github.com/space458/gallery-backend/database/repo/gallery"
	newsrepo "github.com/space458/gallery-backend/database/repo/news"
)

type rateLimiters struct {
	auth  *middleware.IPRateLimiter
	api   *middleware.IPRateLimiter
	image *middleware.IPRateLimiter
}

// registerRoutes 注册所有路由
func registerRoutes(router *gin.Engine, deps *ServerDependencies, limiters *rateLimiters) {
	cfg := config.Get()
	db := deps.Provider.DB()

	bannersRepo := bannersrepo.NewRepository(db)
	exhibitionsRepo := exhibitionsrepo.NewRepository(db)
	newsRepo := newsrepo.NewRepository(db)
	galleryRepo := galleryrepo.NewRepository(db)

	maxBytes := cfg.UploadMaxBytes()
	bannerHandler := handlerBanners.NewHandler(bannersRepo, deps.Store, deps.Cache, maxBytes)
	exhibitionHandler := handlerExhibitions.NewHandler(exhibitionsRepo, deps.Store, deps.Cache, maxBytes)
	newsHandler := handlerNews.NewHandler(newsRepo, deps.Store, deps.Cache, maxBytes)
	galleryHandler := handlerGallery.NewHandler(galleryRepo)
	contactHandler := handlerContact.NewHandler(deps.Contact)
	imageHandler := handlerImages.NewHandler(bannersRepo, exhibitionsRepo, newsRepo,
		deps.Store, deps.Cache, cache.ImageTTL(cfg))
	loginHandler := api.NewLoginHandler(deps.LoginService)

	// 基础路由
	healthHandler := NewHealthHandler(deps)
	router.GET("/health", healthHandler.Handle)
	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	// 公共图片访问
	imagesGroup := router.Group("/api/images")
	imagesGroup.Use(limiters.image.Middleware())
	{
		imagesGroup.GET("/banners/:id", imageHandler.ServeBanner)         // GET /api/images/banners/{id}
		imagesGroup.GET("/exhibitions/:id", imageHandler.ServeExhibition) // GET /api/images/exhibitions/{id}?type=poster|{index}
		imagesGroup.GET("/news/:id", imageHandler.ServeNews)              // GET /api/images/news/{id}
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) { // 所有 JSON API 禁止缓存
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		// 公共读取接口
		publicGroup := apiGroup.Group("")
		publicGroup.Use(limiters.api.Middleware())
		{
			publicGroup.GET("/banners", bannerHandler.List)          // GET /api/banners
			publicGroup.GET("/exhibitions", exhibitionHandler.List)  // GET /api/exhibitions
			publicGroup.GET("/news", newsHandler.List)               // GET /api/news
			publicGroup.POST("/contact", contactHandler.Submit)      // POST /api/contact
		}

		// 认证路由
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(limiters.auth.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc) // POST /api/auth/login
		}

		// 管理端路由
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(limiters.api.Middleware())
		adminGroup.Use(middleware.RequireAuth(deps.JWTService))
		{
			bannersGroup := adminGroup.Group("/banners")
			{
				bannersGroup.GET("", bannerHandler.AdminList)      // GET /api/admin/banners
				bannersGroup.POST("", bannerHandler.Create)        // POST /api/admin/banners
				bannersGroup.GET("/:id", bannerHandler.AdminGet)   // GET /api/admin/banners/{id}
				bannersGroup.PUT("/:id", bannerHandler.Update)     // PUT /api/admin/banners/{id}
				bannersGroup.DELETE("/:id", bannerHandler.Delete)  // DELETE /api/admin/banners/{id}
			}

			exhibitionsGroup := adminGroup.Group("/exhibitions")
			{
				exhibitionsGroup.GET("", exhibitionHandler.List)         // GET /api/admin/exhibitions
				exhibitionsGroup.POST("", exhibitionHandler.Create)      // POST /api/admin/exhibitions
				exhibitionsGroup.GET("/:id", exhibitionHandler.AdminGet) // GET /api/admin/exhibitions/{id}
				exhibitionsGroup.PUT("/:id", exhibitionHandler.Update)   // PUT /api/admin/exhibitions/{id}
				exhibitionsGroup.DELETE("/:id", exhibitionHandler.Delete)
			}

			newsGroup := adminGroup.Group("/news")
			{
				newsGroup.GET("", newsHandler.List)        // GET /api/admin/news
				newsGroup.POST("", newsHandler.Create)     // POST /api/admin/news
				newsGroup.GET("/:id", newsHandler.AdminGet)
				newsGroup.PUT("/:id", newsHandler.Update)  // PUT /api/admin/news/{id}
				newsGroup.DELETE("/:id", newsHandler.Delete)
			}

			adminGroup.GET("/gallery-info", galleryHandler.Get)    // GET /api/admin/gallery-info
			adminGroup.PUT("/gallery-info", galleryHandler.Update) // PUT /api/admin/gallery-info
		}
	}

	router.NoRoute(func(c *gin.Context) {
		common.RespondError(c, http.StatusNotFound, "Not found")
	})
}
