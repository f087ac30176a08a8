package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/res"
	"golang.org/x/time/rate"
)

// idleTTL лимитеры клиентов, не приходивших дольше, удаляются при очистке
const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore лимитеры по IP адресу
type rateLimiterStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiterStore(cfg config.RateLimitConfig) *rateLimiterStore {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiterStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// getLimiter возвращает лимитер для IP, создавая его при первом обращении
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > idleTTL {
		for key, v := range s.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(s.visitors, key)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware ограничивает частоту запросов с одного IP адреса
func RateLimitMiddleware(cfg config.RateLimitConfig, log *logger.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(cfg)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			log.Warnw("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, res.Envelope{
				Error:   string(domain.KindRateLimited),
				Message: res.Message(res.MsgRateLimited, domain.LanguageDE),
			})
			return
		}
		c.Next()
	}
}
