package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/api/rest/handlers"
	"github.com/medusa-studio/booking-api/internal/api/rest/middleware"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/res"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// preflightMaxAge время кэширования preflight ответа браузером
const preflightMaxAge = 24 * time.Hour

var apiPaths = []string{
	"/api/booking",
	"/api/contact",
	"/api/payment",
	"/api/payment-methods",
	"/api/health",
}

// Handlers обработчики публичного API
type Handlers struct {
	Booking *handlers.BookingHandler
	Contact *handlers.ContactHandler
	Payment *handlers.PaymentHandler
	Health  *handlers.HealthHandler
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(cfg *config.Config, h Handlers, registry *prometheus.Registry, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(res.MethodNotAllowed)

	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.Recovery(log))
	r.Use(corsMiddleware(cfg.CORS))

	// OPTIONS без Origin cors пропускает дальше; отвечаем одинаково для всех путей API
	for _, path := range apiPaths {
		r.OPTIONS(path, preflight)
	}

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.HealthCheck)
		api.GET("/payment-methods", h.Payment.Methods)

		forms := api.Group("", middleware.RateLimitMiddleware(cfg.RateLimit, log))
		forms.POST("/booking", h.Booking.Submit)
		forms.POST("/contact", h.Contact.Submit)
		forms.POST("/payment", h.Payment.Process)
	}

	return r
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
)

// corsMiddleware ставит один и тот же набор CORS заголовков на каждый ответ, с Origin и без.
// Запросы с чужим Origin не отклоняются: они обрабатываются как обычно, а браузер сам
// не отдаст ответ странице, потому что Allow-Origin указывает на настроенный адрес.
func corsMiddleware(c config.CORSConfig) gin.HandlerFunc {
	cc := corsConfig(c)
	handler := cors.New(cc)

	allowOrigin := "*"
	if !cc.AllowAllOrigins {
		allowOrigin = cc.AllowOrigins[0]
	}
	lowerOrigin := strings.ToLower(allowOrigin)
	methods := strings.Join(corsMethods, ",")
	headers := strings.Join(corsHeaders, ",")
	maxAge := strconv.FormatInt(int64(preflightMaxAge/time.Second), 10)

	return func(ctx *gin.Context) {
		h := ctx.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)
		h.Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)
		h.Set("Access-Control-Max-Age", maxAge)

		origin := ctx.GetHeader("Origin")
		if origin == "" || cc.AllowAllOrigins || origin == lowerOrigin {
			handler(ctx)
			return
		}
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  corsHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        preflightMaxAge,
	}
	if c.AllowedOrigin == "" || c.AllowedOrigin == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = []string{c.AllowedOrigin}
	}
	return cc
}
