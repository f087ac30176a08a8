package res

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/internal/domain"
	"go.uber.org/zap"
)

// Envelope единый формат ответа API
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JsonResponse отправляет JSON-ответ с заданным статусом.
func JsonResponse(c *gin.Context, data any, status int) {
	c.JSON(status, data)
}

// OK успешный ответ с данными
func OK(c *gin.Context, data any) {
	JsonResponse(c, Envelope{Success: true, Data: data}, http.StatusOK)
}

// Synthesize сопоставляет внутреннюю ошибку коду ошибки, HTTP статусу и локализованному сообщению.
// Текст исходной ошибки в ответ не попадает.
func Synthesize(err error, lang domain.Language) (int, Envelope) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		env := Envelope{Error: string(domain.KindValidation), Message: Message(MsgValidation, lang)}
		if fields := verrs.Fields(); len(fields) > 0 {
			env.Data = gin.H{"fields": fields}
		}
		return http.StatusBadRequest, env
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, Envelope{Error: string(domain.KindValidation), Message: Message(MsgValidation, lang)}
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, Envelope{Error: string(domain.KindInvalidPaymentMethod), Message: Message(MsgInvalidPaymentMethod, lang)}
	default:
		return http.StatusInternalServerError, Envelope{Error: string(domain.KindServer), Message: Message(MsgServerError, lang)}
	}
}

// JsonErrorResponse отправляет ответ ошибки и логирует исходную ошибку
func JsonErrorResponse(c *gin.Context, err error, lang domain.Language, log *zap.Logger) {
	status, env := Synthesize(err, lang)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		log.Warn("Request rejected", zap.String("path", c.FullPath()), zap.String("error_kind", env.Error), zap.Error(err))
	}
	JsonResponse(c, env, status)
}

// MethodNotAllowed ответ для неподдерживаемого HTTP метода
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Error: "Method not allowed"})
}
