package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/res"
)

// Recovery превращает панику обработчика в ответ 500 SERVER_ERROR
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Errorw("Panic recovered", "path", c.Request.URL.Path, "requestID", c.GetString(RequestIDKey), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Envelope{
			Error:   string(domain.KindServer),
			Message: res.Message(res.MsgServerError, domain.LanguageDE),
		})
	})
}
