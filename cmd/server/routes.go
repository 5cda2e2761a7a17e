package main

import (
	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/interfaces/http/handlers"
	"market-hub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler            *handlers.AuthHandler
	vendorHandler          *handlers.VendorHandler
	productHandler         *handlers.ProductHandler
	orderHandler           *handlers.OrderHandler
	notificationHandler    *handlers.NotificationHandler
	reviewRequestHandler   *handlers.ReviewRequestHandler
	payoutHandler          *handlers.PayoutHandler
	couponHandler          *handlers.CouponHandler
	authMiddleware         gin.HandlerFunc
	optionalAuthMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Storefront routes (public)
		products := v1.Group("/products")
		{
			products.GET("", d.productHandler.ListProducts)
			products.GET("/:id", d.productHandler.GetProduct)
			products.GET("/:id/reviews", d.productHandler.ListProductReviews)
		}
		v1.GET("/stores/:slug", d.vendorHandler.GetVendorBySlug)
		v1.GET("/coupons/validate", d.couponHandler.ValidateCoupon)

		// Checkout and customer orders. Guests may order without a
		// session, so auth is optional on placement and lookup.
		orders := v1.Group("/orders")
		{
			orders.POST("", d.optionalAuthMiddleware, middleware.IdempotencyMiddleware(), d.orderHandler.PlaceOrder)
			orders.GET("", d.authMiddleware, d.orderHandler.ListMyOrders)
			orders.GET("/:id", d.optionalAuthMiddleware, d.orderHandler.GetOrder)
		}

		// Public review invitation routes (token is the credential)
		v1.GET("/review/:token", d.reviewRequestHandler.GetByToken)
		v1.POST("/review/:token/submit", d.reviewRequestHandler.SubmitReview)
		v1.GET("/reviews/track/:token", d.reviewRequestHandler.TrackEmailOpen)

		// Self-service vendor onboarding (any authenticated user)
		v1.POST("/vendors/register", d.authMiddleware, d.vendorHandler.RegisterVendor)

		// Vendor routes (protected)
		vendor := v1.Group("/vendor")
		vendor.Use(d.authMiddleware, middleware.RequireVendor())
		{
			vendor.GET("/store", d.vendorHandler.GetMyStore)

			vendor.GET("/products", d.productHandler.ListMyProducts)
			vendor.POST("/products", d.productHandler.CreateProduct)
			vendor.PUT("/products/:id", d.productHandler.UpdateProduct)
			vendor.DELETE("/products/:id", d.productHandler.DeleteProduct)

			vendor.GET("/orders", d.orderHandler.ListVendorOrders)
			vendor.PATCH("/orders/:id/items/:productId/status", d.orderHandler.UpdateVendorItemStatus)

			vendor.POST("/payouts", middleware.IdempotencyMiddleware(), d.payoutHandler.RequestPayout)
			vendor.GET("/payouts", d.payoutHandler.ListMyPayouts)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.POST("/vendors", d.vendorHandler.CreateVendor)
			admin.GET("/vendors", d.vendorHandler.ListVendors)
			admin.GET("/vendors/:id", d.vendorHandler.GetVendor)
			admin.PATCH("/vendors/:id/status", d.vendorHandler.UpdateVendorStatus)
			admin.DELETE("/vendors/:id", d.vendorHandler.DeleteVendor)
			admin.DELETE("/vendors/:id/permanent", d.vendorHandler.DeleteVendorPermanent)
			admin.DELETE("/vendors", d.vendorHandler.DeleteAllVendors)
			admin.POST("/vendors/:id/impersonate", d.vendorHandler.ImpersonateVendor)
			admin.POST("/vendors/fix-indexes", d.vendorHandler.FixVendorIndexes)

			admin.GET("/orders", d.orderHandler.ListOrders)
			admin.PATCH("/orders/:id/status", d.orderHandler.UpdateOrderStatus)
			admin.POST("/orders/:id/fail", d.orderHandler.MarkOrderFailed)
			admin.POST("/orders/:id/vendors/:vendorId/paid", d.orderHandler.MarkVendorSummaryPaid)

			admin.POST("/orders/:id/notify-failed", d.notificationHandler.SendFailedOrderNotification)
			admin.GET("/orders/:id/notifications", d.notificationHandler.GetFailedOrderNotificationStatus)
			admin.PATCH("/orders/:id/notifications", d.notificationHandler.ToggleFailedOrderNotification)

			admin.POST("/review-requests/send", d.reviewRequestHandler.SendReviewRequests)
			admin.GET("/review-requests", d.reviewRequestHandler.ListReviewRequests)
			admin.GET("/review-requests/:id", d.reviewRequestHandler.GetReviewRequest)
			admin.POST("/review-requests/:id/approve", d.reviewRequestHandler.ApproveReviewRequest)
			admin.POST("/review-requests/:id/reject", d.reviewRequestHandler.RejectReviewRequest)
			admin.POST("/review-requests/:id/cancel", d.reviewRequestHandler.CancelReviewRequest)

			admin.GET("/payouts", d.payoutHandler.ListPayouts)
			admin.POST("/payouts/:id/approve", d.payoutHandler.ApprovePayout)
			admin.POST("/payouts/:id/paid", d.payoutHandler.MarkPayoutPaid)
			admin.POST("/payouts/:id/reject", d.payoutHandler.RejectPayout)

			admin.POST("/coupons", d.couponHandler.CreateCoupon)
			admin.GET("/coupons", d.couponHandler.ListCoupons)
			admin.GET("/coupons/:id", d.couponHandler.GetCoupon)
			admin.PUT("/coupons/:id", d.couponHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", d.couponHandler.DeleteCoupon)
		}
	}
}
