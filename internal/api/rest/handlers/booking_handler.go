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

// BookingHandler обработчик заявок на бронирование
type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

// NewBookingHandler создает обработчик бронирований
func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{service: svc, log: log}
}

type bookingResponse struct {
	Success           bool   `json:"success"`
	BookingID         string `json:"bookingId"`
	Message           string `json:"message"`
	EstimatedResponse string `json:"estimatedResponse"`
	ContactID         string `json:"contactId"`
	DealID            string `json:"dealId,omitempty"`
}

// Submit POST /api/booking
func (h *BookingHandler) Submit(c *gin.Context) {
	body, err := req.HandleBody[domain.BookingRequest](c.Request.Body)
	lang := body.Lang()
	if err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	result, err := h.service.Submit(c.Request.Context(), body)
	if err != nil {
		res.JsonErrorResponse(c, err, lang, h.log.Zap())
		return
	}

	res.JsonResponse(c, bookingResponse{
		Success:           true,
		BookingID:         result.BookingID,
		Message:           res.Message(res.MsgBookingSuccess, lang),
		EstimatedResponse: result.EstimatedResponse,
		ContactID:         result.ContactID,
		DealID:            result.DealID,
	}, http.StatusOK)
}
