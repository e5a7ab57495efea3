package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/handler"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/jwt"
	"github.com/redis/go-redis/v9"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	pageHandler *handler.PageContentHandler,
	contentHandler *handler.ContentHandler,
	productHandler *handler.ProductHandler,
	inquiryHandler *handler.InquiryHandler,
	uploadHandler *handler.UploadHandler,
	auditHandler *handler.AuditHandler,
	jwtManager *jwt.Manager,
	roleService service.RoleService,
	redisClient *redis.Client,
) {
	api := router.Group("/api/v1")

	// Public site endpoints (no auth)
	api.GET("/pages/:page_key", pageHandler.GetPage)
	api.GET("/pages/:page_key/:section_key", pageHandler.GetSection)
	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:slug", productHandler.GetProduct)
	api.POST("/inquiries",
		middleware.RateLimit(redisClient, middleware.InquiryRateLimitConfig()),
		inquiryHandler.SubmitInquiry)

	// Authentication
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.GetProfile)

	// Admin console (auth required)
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager))
	{
		// Live page content
		admin.PUT("/pages",
			middleware.RequirePermission(roleService, service.PermContentUpdate),
			pageHandler.UpsertContent)
		admin.DELETE("/pages/:id",
			middleware.RequirePermission(roleService, service.PermContentDelete),
			pageHandler.DeleteContent)

		// Version history
		contents := admin.Group("/contents")
		{
			contents.POST("/:id/versions",
				middleware.RequirePermission(roleService, service.PermContentUpdate),
				contentHandler.CreateVersion)
			contents.GET("/:id/versions", contentHandler.ListVersions)
			contents.GET("/:id/approvals", contentHandler.ListApprovals)
		}
		admin.GET("/versions/:version_id", contentHandler.GetVersion)
		admin.POST("/versions/:version_id/restore",
			middleware.RequirePermission(roleService, service.PermContentUpdate),
			contentHandler.RestoreVersion)

		// Approval workflow. The service layer enforces the approver
		// permission itself; no extra middleware gate here.
		approvals := admin.Group("/approvals")
		{
			approvals.POST("", contentHandler.SubmitApproval)
			approvals.GET("/pending", contentHandler.ListPendingApprovals)
			approvals.GET("/:approval_id", contentHandler.GetApproval)
			approvals.POST("/:approval_id/approve", contentHandler.ApproveContent)
			approvals.POST("/:approval_id/reject", contentHandler.RejectContent)
		}

		// Product catalog management
		products := admin.Group("/products", middleware.RequirePermission(roleService, service.PermProductManage))
		{
			products.GET("", productHandler.ListAllProducts)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Inquiry inbox
		inquiries := admin.Group("/inquiries", middleware.RequirePermission(roleService, service.PermInquiryManage))
		{
			inquiries.GET("", inquiryHandler.ListInquiries)
			inquiries.PATCH("/:id/status", inquiryHandler.UpdateInquiryStatus)
		}

		// Media uploads
		admin.POST("/uploads",
			middleware.RequirePermission(roleService, service.PermUploadManage),
			uploadHandler.UploadFile)

		// Audit log
		admin.GET("/audit-logs",
			middleware.RequirePermission(roleService, service.PermAuditView),
			auditHandler.ListAuditLogs)
	}
}
