package routes

import (
	"github.com/BerniceZTT/crm_interactions/metrics"
	"github.com/BerniceZTT/crm_interactions/repository"
	"github.com/BerniceZTT/crm_interactions/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine) {
	RegisterInteractionRoutes(router)
	RegisterInteractionFilterRoutes(router)
	RegisterDashboardStatsRoutes(router)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 数据库状态检查路由
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "获取数据库状态失败: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
