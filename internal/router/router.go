package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lenspick/lenspick-backend/config"
	"github.com/lenspick/lenspick-backend/internal/app/controller"
	"github.com/lenspick/lenspick-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	profileController      *controller.ProfileController
	postController         *controller.PostController
	reviewController       *controller.ReviewController
	categoryController     *controller.CategoryController
	adminController        *controller.AdminController
	uploadController       *controller.UploadController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	profileMiddleware      *middleware.ProfileMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	profileController *controller.ProfileController,
	postController *controller.PostController,
	reviewController *controller.ReviewController,
	categoryController *controller.CategoryController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	profileMiddleware *middleware.ProfileMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		profileController:      profileController,
		postController:         postController,
		reviewController:       reviewController,
		categoryController:     categoryController,
		adminController:        adminController,
		uploadController:       uploadController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		profileMiddleware:      profileMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "LENSPICK API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// 장르 목록은 온보딩 화면에서 로그인 전에도 필요함
		v1.GET("/categories", r.categoryController.GetAll)

		profiles := v1.Group("/profiles", r.authMiddleware.Authenticate())
		{
			profiles.GET("/me", r.profileController.Me)
			profiles.PATCH("/me", r.profileController.Update)
			profiles.POST("/me/onboarding", r.profileController.CompleteOnboarding)
			profiles.GET("/:id", r.profileController.GetByID)

			withProfile := profiles.Group("", r.profileMiddleware.RequireProfile())
			{
				withProfile.GET("/me/posts", r.profileController.MyPosts)
				withProfile.GET("/me/reviews", r.profileController.MyReviews)
			}
		}

		posts := v1.Group("/posts",
			r.authMiddleware.Authenticate(),
			r.profileMiddleware.RequireProfile(),
		)
		{
			posts.GET("", r.postController.List)
			posts.GET("/:id", r.postController.GetByID)
			posts.GET("/:id/reviews", r.reviewController.ListByPost)

			// 작성/리뷰는 온보딩 완료가 필요함
			onboarded := posts.Group("", r.profileMiddleware.RequireOnboarded())
			{
				onboarded.POST("", r.postController.Create)
				onboarded.GET("/recommended", r.postController.Recommended)
				onboarded.POST("/:id/reviews", r.reviewController.Submit)
			}
		}

		notifications := v1.Group("/notifications",
			r.authMiddleware.Authenticate(),
			r.profileMiddleware.RequireProfile(),
		)
		{
			notifications.GET("", r.notificationController.List)
			notifications.GET("/ws", r.notificationController.Connect)
			notifications.POST("/read-all", r.notificationController.MarkAllRead)
			notifications.POST("/:id/read", r.notificationController.MarkRead)
		}

		upload := v1.Group("/upload", r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		admin := v1.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("admin"),
		)
		{
			admin.GET("/posts", r.adminController.ListLockedPosts)
			admin.POST("/posts/:id/live", r.adminController.ForceLive)
			admin.DELETE("/posts/:id", r.adminController.DeletePost)
			admin.POST("/profiles/:id/unlock", r.adminController.ForceUnlock)
			admin.GET("/reports/activity", r.adminController.ActivityReport)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
