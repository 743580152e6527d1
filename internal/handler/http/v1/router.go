package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := APIKeyAuthMiddleware(h.cfg, h.logger)

	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/resolve", protected, h.resolveIncident)
		incidents.POST("/:id/verify", protected, h.verifyIncident)
		incidents.PUT("/:id/status", protected, h.updateStatus)
	}

	api.POST("/dashboard/refresh", protected, h.refreshDashboard)
	api.POST("/upload", protected, h.uploadFiles)
	api.POST("/analyze/text", protected, h.analyzeText)

	// Запросы к ассистенту и аналитике не меняют коллекцию
	api.POST("/chat", h.chat)
	api.POST("/query", h.query)
	api.POST("/social/analyze", h.analyzeSocialPost)
	api.POST("/satellite/analyze", h.analyzeSatellite)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
