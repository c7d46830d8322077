package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/services"
	"github.com/SAP-F-2025/career-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	profileHandler *ProfileHandler
	careerHandler  *CareerHandler
	doubtHandler   *DoubtHandler
	healthHandler  *HealthHandler
	authMiddleware *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	tokens *utils.TokenIssuer,
	requireToken bool,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		profileHandler: NewProfileHandler(serviceManager.Profile(), logger),
		careerHandler:  NewCareerHandler(serviceManager.Career(), logger),
		doubtHandler:   NewDoubtHandler(serviceManager.Doubt(), logger),
		healthHandler:  NewHealthHandler(serviceManager, logger),
		authMiddleware: NewAuthMiddleware(tokens, requireToken),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Health)

	// Public account routes
	router.POST("/register", hm.authHandler.Register)
	router.POST("/login", hm.authHandler.Login)

	// The chatbot answers {response} even when authentication fails
	router.POST("/chatbot", hm.authMiddleware.AuthenticateChat(), hm.careerHandler.Chatbot)

	// Everything else resolves the caller through the auth middleware
	authed := router.Group("")
	authed.Use(hm.authMiddleware.Authenticate())
	{
		authed.GET("/check_profile/:user_id", hm.profileHandler.CheckProfile)
		authed.POST("/submit", hm.profileHandler.Submit)
		authed.POST("/career_summary", hm.careerHandler.CareerSummary)

		users := authed.Group("/api/user")
		{
			users.GET("/:user_id", hm.profileHandler.GetUser)
			users.PUT("/:user_id", hm.profileHandler.UpdateUser)
			users.DELETE("/:user_id", hm.profileHandler.DeleteUser)
		}

		authed.GET("/api/career_summary/history", hm.careerHandler.History)

		doubts := authed.Group("/api/doubts")
		{
			doubts.POST("", hm.doubtHandler.CreateDoubt)
			doubts.GET("", hm.doubtHandler.ListDoubts)
			doubts.GET("/export", hm.doubtHandler.ExportDoubts)
			doubts.GET("/:id", hm.doubtHandler.GetDoubt)
			doubts.POST("/:id/reply", hm.doubtHandler.ReplyDoubt)
			doubts.POST("/:id/resolve", hm.doubtHandler.ResolveDoubt)
		}
	}
}
