package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_interactions/controllers"
)

// RegisterInteractionRoutes 注册客户互动记录相关路由
func RegisterInteractionRoutes(router *gin.Engine) {
	interactionGroup := router.Group("/api/interactions")

	// 按筛选条件分页查询互动记录
	interactionGroup.GET("", controllers.GetInteractionList)

	// 获取互动记录详情
	interactionGroup.GET("/:id", controllers.GetInteractionDetail)

	// 创建互动记录
	interactionGroup.POST("", controllers.CreateInteraction)

	// 删除互动记录
	interactionGroup.DELETE("/:id", controllers.DeleteInteraction)

	// 标记跟进已完成
	interactionGroup.PUT("/:id/follow-up/complete", controllers.CompleteInteractionFollowUp)
}

// RegisterInteractionFilterRoutes 注册筛选面板相关路由
func RegisterInteractionFilterRoutes(router *gin.Engine) {
	filterGroup := router.Group("/api/interaction-filters")

	filterGroup.POST("/resolve", controllers.ResolveFilter)
	filterGroup.GET("/quick-filters", controllers.GetQuickFilters)
	filterGroup.GET("/options", controllers.GetFilterOptions)
}
