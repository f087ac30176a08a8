package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/service"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/req"
	"github.com/medusa-studio/booking-api/pkg/res"
)

// ContactHandler обработчик контактной формы
type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

// NewContactHandler создает обработчик контактной формы
func NewContactHandler(svc service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{service: svc, log: log}
}

// Submit POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	body, err := req.HandleBody[domain.ContactRequest](c.Request.Body)
	lang := body.Lang()
	if err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	if err := h.service.Submit(c.Request.Context(), body); err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	res.JsonResponse(c, res.Envelope{
		Success: true,
		Message: res.Message(res.MsgContactSuccess, lang),
	}, http.StatusOK)
}
