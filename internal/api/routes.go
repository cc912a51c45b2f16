package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Editing sessions ---
	router.POST("/session", h.CreateSession)
	sessionGroup := router.Group("/session/:id")
	{
		sessionGroup.GET("", h.GetSession)
		sessionGroup.DELETE("", h.DeleteSession)
		sessionGroup.PUT("/content", h.UpdateContent)
		sessionGroup.GET("/messages", h.GetMessages)

		// AI generation; one run per session at a time
		sessionGroup.POST("/generate", h.GenerateWireframe)
		sessionGroup.POST("/refine", h.RefineWireframe)
		sessionGroup.POST("/stop", h.StopGeneration)

		// Pages
		sessionGroup.POST("/pages", h.AddPages)
		sessionGroup.POST("/pages/:pageId/activate", h.ActivatePage)

		// Add-page form draft
		sessionGroup.GET("/draft", h.GetDraft)
		sessionGroup.PUT("/draft", h.SaveDraft)
		sessionGroup.DELETE("/draft", h.ClearDraft)

		sessionGroup.POST("/export", h.ExportSession)
	}

	// --- Saved wireframes ---
	wireframeGroup := router.Group("/wireframes")
	{
		wireframeGroup.POST("", h.SaveWireframe)
		wireframeGroup.GET("", h.ListWireframes)
		wireframeGroup.GET("/recent", h.RecentWireframes)
		wireframeGroup.GET("/:wireframeId", h.GetWireframe)
	}

	router.GET("/placeholder", h.RenderPlaceholder)

	// --- Simple Health Check ---
	router.GET("/health", h.Health)
}
