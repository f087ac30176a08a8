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

// PaymentHandler обработчик платежей
type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

// NewPaymentHandler создает новый обработчик платежей
func NewPaymentHandler(svc service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, log: log}
}

// Process POST /api/payment. Ответ это результат платежного адаптера:
// 200 при success, 400 при отказе провайдера.
func (h *PaymentHandler) Process(c *gin.Context) {
	body, err := req.HandleBody[domain.PaymentRequest](c.Request.Body)
	lang := body.Lang()
	if err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	result, err := h.service.Process(c.Request.Context(), body)
	if err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	res.JsonResponse(c, result, status)
}

// Methods GET /api/payment-methods
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods := h.service.Methods()
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	// data присутствует всегда, даже пустым массивом
	res.JsonResponse(c, gin.H{"success": true, "data": methods}, http.StatusOK)
}
