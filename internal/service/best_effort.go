package service

import (
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

// bestEffort выполняет вспомогательный вызов интеграции, который не должен влиять на ответ.
// Неуспех и паника логируются; вызывающий получает нулевое значение и false.
func bestEffort[T any](log *logger.Logger, op string, fn func() domain.IntegrationResult[T]) (data T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Best-effort operation panicked", "operation", op, "panic", r)
			var zero T
			data, ok = zero, false
		}
	}()

	res := fn()
	if !res.Success {
		log.Warnw("Best-effort operation failed", "operation", op, "error", res.Error)
		var zero T
		return zero, false
	}
	return res.Data, true
}

// bestEffortErr то же для вызовов, возвращающих error (публикация событий)
func bestEffortErr(log *logger.Logger, op string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Best-effort operation panicked", "operation", op, "panic", r)
		}
	}()

	if err := fn(); err != nil {
		log.Warnw("Best-effort operation failed", "operation", op, "error", err)
	}
}
