// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nuovo/internal/delivery/http/middleware"
	"nuovo/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	BrandHandler        *handler.BrandHandler
	ProductHandler      *handler.ProductHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	brandHandler        *handler.BrandHandler
	productHandler      *handler.ProductHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		brandHandler:        params.BrandHandler,
		productHandler:      params.ProductHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public catalog routes
	e.GET("/brands", r.brandHandler.GetBrands)
	e.GET("/brands/:brand_id", r.brandHandler.GetBrand)
	e.GET("/products", r.productHandler.GetProducts)
	e.GET("/products/:product_id", r.productHandler.GetProduct)
	e.POST("/products/:product_id/click", r.productHandler.RecordClick)
	e.POST("/products/:product_id/clickthrough", r.productHandler.RecordClickThrough)

	// Auth routes
	authGroup := e.Group("/user/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/forgot_password", r.userHandler.ForgotPassword)
	}

	// Account routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.POST("/auth/logout", r.userHandler.Logout)
		userGroup.PUT("/auth/change-password", r.userHandler.ChangePassword)
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.EditProfile)
		userGroup.GET("/profile/following", r.brandHandler.GetFollowing)
		userGroup.DELETE("", r.userHandler.DeleteAccount)

		userGroup.POST("/follow_brand/:brand_id", r.brandHandler.FollowBrand)
		userGroup.POST("/unfollow_brand/:brand_id", r.brandHandler.UnfollowBrand)
		userGroup.POST("/follow_subcategory/:subcategory", r.brandHandler.FollowSubcategory)
		userGroup.POST("/unfollow_subcategory/:subcategory", r.brandHandler.UnfollowSubcategory)

		userGroup.GET("/wishlist", r.productHandler.GetWishlist)
		userGroup.POST("/wishlist/:product_id", r.productHandler.AddToWishlist)
		userGroup.DELETE("/wishlist/:product_id", r.productHandler.RemoveFromWishlist)

		userGroup.GET("/notifications", r.notificationHandler.GetNotifications)
		userGroup.PUT("/notifications/mark-all-read", r.notificationHandler.MarkAllAsRead)
		userGroup.PUT("/notifications/:notification_id", r.notificationHandler.MarkAsRead)
		userGroup.DELETE("/notifications/:notification_id", r.notificationHandler.DeleteNotification)
	}

	// Admin routes that require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/users", r.userHandler.ListUsers)
		adminGroup.DELETE("/user", r.userHandler.AdminDeleteUser)
		adminGroup.GET("/metrics", r.userHandler.GetMetrics)

		adminGroup.POST("/brands", r.brandHandler.AddBrand)
		adminGroup.PUT("/brands/:brand_id", r.brandHandler.EditBrand)
		adminGroup.DELETE("/brands/:brand_id", r.brandHandler.DeleteBrand)

		adminGroup.POST("/products", r.productHandler.AddProduct)
		adminGroup.PUT("/products/:product_id", r.productHandler.EditProduct)
		adminGroup.DELETE("/products/:product_id", r.productHandler.DeleteProduct)
	}
}
