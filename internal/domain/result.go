package domain

import "fmt"

// IntegrationResult единый результат вызова внешней интеграции.
// Создается заново на каждый вызов и не переиспользуется между запросами.
type IntegrationResult[T any] struct {
	Success           bool
	Data              T
	Error             string
	ProviderMessageID string
}

// Succeeded успешный результат
func Succeeded[T any](data T, providerMessageID string) IntegrationResult[T] {
	return IntegrationResult[T]{Success: true, Data: data, ProviderMessageID: providerMessageID}
}

// FailedResult неуспешный результат с текстом ошибки провайдера
func FailedResult[T any](format string, args ...any) IntegrationResult[T] {
	return IntegrationResult[T]{Error: fmt.Sprintf(format, args...)}
}

// Err превращает неуспешный результат в ошибку, оборачивающую ErrProviderFailure
func (r IntegrationResult[T]) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrProviderFailure, r.Error)
}
