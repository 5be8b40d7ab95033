package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/wellness-service/internal/auth"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	checkInHandler   *CheckInHandler
	dashboardHandler *DashboardHandler
	linkHandler      *LinkHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenIssuer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		checkInHandler:   NewCheckInHandler(serviceManager.CheckIn(), serviceManager.Export(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Analytics(), logger),
		linkHandler:      NewLinkHandler(serviceManager.Link(), logger),
		authMiddleware:   NewJWTAuthMiddleware(tokens),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes; register and login are the only unauthenticated paths
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", hm.authHandler.Register)
			authGroup.POST("/login", hm.authHandler.Login)
			authGroup.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
			authGroup.PUT("/language", hm.authMiddleware.AuthMiddleware(), hm.authHandler.UpdateLanguage)
		}

		// Check-in routes - Students only
		mood := v1.Group("/mood")
		mood.Use(hm.authMiddleware.AuthMiddleware())
		mood.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			mood.POST("", hm.checkInHandler.Submit)
			mood.GET("", hm.checkInHandler.List)
			mood.GET("/today", hm.checkInHandler.GetToday)
			mood.GET("/export", hm.checkInHandler.Export)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.AuthMiddleware())
		{
			dashboard.GET("/student",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent),
				hm.dashboardHandler.StudentDashboard)
			dashboard.GET("/parent/:studentId",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleParent),
				hm.dashboardHandler.ParentDashboard)
			dashboard.GET("/parent/:studentId/alerts",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleParent),
				hm.dashboardHandler.AlertHistory)
		}

		// Linking routes - Parents only
		parent := v1.Group("/parent")
		parent.Use(hm.authMiddleware.AuthMiddleware())
		parent.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleParent))
		{
			parent.POST("/link", hm.linkHandler.Link)
			parent.GET("/students", hm.linkHandler.ListStudents)
			parent.DELETE("/unlink/:studentId", hm.linkHandler.Unlink)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "wellness-service",
		})
	})
}
