package middleware

import (
	"github.com/BerniceZTT/crm_interactions/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 全局错误处理中间件，处理通过 c.Error 上报但未写响应的错误
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		utils.HandleError(c, c.Errors.Last().Err)
	}
}
