package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/api/handlers"
	"github.com/linskybing/genie-forms/internal/api/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	authMiddleware := middleware.NewAuth()

	r.GET("/healthz", handlers.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)
	r.GET("/auth/status", middleware.JWTAuthMiddleware(), h.User.AuthStatus)

	// Anonymous callers may fill in forms; a valid token attributes the
	// submission to its user.
	public := r.Group("/")
	public.Use(middleware.OptionalJWT())
	{
		formsGroup := public.Group("/forms")
		{
			formsGroup.GET("", h.Form.ListForms)
			formsGroup.GET("/:id", h.Form.GetForm)
			formsGroup.POST("/:id/validate", h.Form.ValidateForm)
			formsGroup.POST("/:id/submissions", h.Form.SubmitForm)
		}

		functions := public.Group("/functions")
		{
			functions.POST("/process-form", h.Function.ProcessForm)
			functions.POST("/teams-webhook", h.Function.TeamsWebhook)
		}

		ai := public.Group("/ai")
		{
			ai.POST("/measurements", h.Suggestion.SuggestMeasurements)
			ai.POST("/objective-measurements-suggestion", h.Suggestion.ObjectiveMeasurements)
			ai.POST("/marketing-action-plan", h.Suggestion.MarketingActionPlan)
			ai.POST("/assistance", h.Suggestion.Assist)
		}
	}

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.POST("/marketing-requests", h.Marketing.SubmitMarketingRequest)
		auth.POST("/functions/send-marketing-email", h.Function.SendMarketingEmail)

		submissions := auth.Group("/submissions")
		{
			submissions.GET("/my", h.Form.ListMySubmissions)
			submissions.GET("", authMiddleware.Admin(), h.Form.ListSubmissions)
			submissions.GET("/:id", h.Form.GetSubmission)
		}

		auth.GET("/audit/logs", authMiddleware.Admin(), h.Audit.GetAuditLogs)
		auth.GET("/ws/submissions", authMiddleware.Admin(), h.Feed.SubmissionFeed)
	}
}
