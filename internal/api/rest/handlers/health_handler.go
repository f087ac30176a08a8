package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Configurable интеграция, умеющая сообщить, настроена ли она
type Configurable interface {
	Configured() bool
}

// HealthHandler отчет о настроенных интеграциях. Сетевые проверки не выполняются.
type HealthHandler struct {
	email    Configurable
	payments Configurable
	crm      Configurable
	now      func() time.Time
}

// NewHealthHandler создает обработчик /api/health
func NewHealthHandler(email, payments, crm Configurable) *HealthHandler {
	return &HealthHandler{email: email, payments: payments, crm: crm, now: time.Now}
}

// HealthCheck обработчик для проверки работоспособности сервиса
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"email":    h.email.Configured(),
			"payments": h.payments.Configured(),
			"crm":      h.crm.Configured(),
		},
	})
}
