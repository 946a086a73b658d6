package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindful-chat/config"
	"mindful-chat/dto"
	"mindful-chat/trace"
)

// Recovery 는 핸들러 panic 을 500 으로 바꾸고 내부 정보를 노출하지 않는다.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		config.ErrorWithFields("panic recovered", config.Fields{
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal_error"})
	})
}
