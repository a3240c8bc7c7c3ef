package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/config"
	"github.com/ikkim/furniture-backend/internal/app/controller"
	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	commentController      *controller.CommentController
	boardController        *controller.BoardController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	uploadController       *controller.UploadController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	commentController *controller.CommentController,
	boardController *controller.BoardController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		commentController:      commentController,
		boardController:        boardController,
		cartController:         cartController,
		orderController:        orderController,
		uploadController:       uploadController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
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
			"message": "Furniture API is running",
		})
	})

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/join", r.authController.Join)
		v1.POST("/login", r.authController.Login)
		v1.POST("/refresh", r.authController.Refresh)
		v1.POST("/logout", authenticated, r.authController.Logout)
		v1.GET("/me", authenticated, r.authController.Me)

		categories := v1.Group("/categories")
		{
			categories.GET("", r.productController.ListCategories)
			categories.POST("", authenticated, adminOnly, r.productController.CreateCategory)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/options", r.productController.ListProductOptions)
			products.GET("/:id/comments", r.commentController.ListComments)

			products.POST("", authenticated, adminOnly, r.productController.CreateProduct)
			products.PUT("/:id", authenticated, adminOnly, r.productController.UpdateProduct)
			products.DELETE("/:id", authenticated, adminOnly, r.productController.DeleteProduct)
			products.POST("/:id/options", authenticated, adminOnly, r.productController.CreateOption)
			products.POST("/:id/comments", authenticated, r.commentController.CreateComment)
			products.POST("/:id/files/presign", authenticated, adminOnly, r.uploadController.PresignProductFile)
			products.POST("/:id/files", authenticated, adminOnly, r.uploadController.RegisterProductFile)
		}

		options := v1.Group("/options")
		{
			options.GET("", r.productController.ListOptions)
			options.GET("/:id", r.productController.GetOption)
			options.PUT("/:id", authenticated, adminOnly, r.productController.UpdateOption)
			options.DELETE("/:id", authenticated, adminOnly, r.productController.DeleteOption)
			options.PUT("/:id/stock", authenticated, adminOnly, r.productController.UpdateStock)
		}

		comments := v1.Group("/comments")
		comments.Use(authenticated)
		{
			comments.DELETE("/:id", r.commentController.DeleteComment)
			comments.POST("/:id/files/presign", r.uploadController.PresignCommentFile)
			comments.POST("/:id/files", r.uploadController.RegisterCommentFile)
		}

		boards := v1.Group("/boards")
		{
			boards.GET("", r.boardController.ListPosts)
			boards.GET("/:id", r.boardController.GetPost)
			boards.POST("", authenticated, r.boardController.CreatePost)
			boards.PUT("/:id", authenticated, r.boardController.UpdatePost)
			boards.DELETE("/:id", authenticated, r.boardController.DeletePost)
		}

		cart := v1.Group("/cart")
		cart.Use(authenticated)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(authenticated)
		{
			orders.GET("", r.orderController.ListOrders)
			orders.POST("/save", r.orderController.Save)
			orders.POST("/delete", r.orderController.Delete)
			orders.GET("/ordercheck/:id", r.orderController.GetOrderCheck)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/:id/return", r.orderController.Return)
			orders.POST("/:id/cancel", r.orderController.Cancel)
			orders.GET("/:id/status", r.orderController.GetStatus)
			orders.PUT("/:id/status", adminOnly, r.orderController.UpdateStatus)
		}

		orderChecks := v1.Group("/orderchecks")
		orderChecks.Use(authenticated, adminOnly)
		{
			orderChecks.POST("/:id/deduct", r.orderController.DeductOrderCheck)
			orderChecks.POST("/:id/restore", r.orderController.RestoreOrderCheck)
		}

		v1.GET("/ws", authenticated, r.notificationController.Connect)
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
