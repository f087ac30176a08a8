package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind код ошибки, который видит клиент
type ErrorKind string

const (
	KindValidation           ErrorKind = "VALIDATION_ERROR"
	KindInvalidPaymentMethod ErrorKind = "INVALID_PAYMENT_METHOD"
	KindServer               ErrorKind = "SERVER_ERROR"
	KindRateLimited          ErrorKind = "RATE_LIMITED"
)

// Application errors
var (
	// ErrValidation неверные входные данные
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPaymentMethod способ оплаты не найден в каталоге
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrNotConfigured у интеграции нет необходимых ключей конфигурации
	ErrNotConfigured = errors.New("integration not configured")

	// ErrTemplateNotFound нет шаблона письма для пары (имя, язык)
	ErrTemplateNotFound = errors.New("email template not found")

	// ErrProviderFailure внешний сервис вернул ошибку
	ErrProviderFailure = errors.New("provider failure")
)

// ValidationError представляет ошибку валидации
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors представляет набор ошибок валидации
type ValidationErrors []ValidationError

// Error реализует интерфейс error
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return fmt.Sprintf("validation failed: %s - %s", e[0].Field, e[0].Message)
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields(), ", "))
}

// Is позволяет errors.Is(err, ErrValidation)
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add добавляет ошибку валидации
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors проверяет наличие ошибок
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Fields возвращает список полей с ошибками
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, err := range e {
		fields[i] = err.Field
	}
	return fields
}

// GetByField возвращает сообщение об ошибке для указанного поля
func (e ValidationErrors) GetByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// ExternalServiceError представляет ошибку внешнего сервиса
type ExternalServiceError struct {
	Service     string
	Code        string
	Message     string
	StatusCode  int
	OriginalErr error
}

// Error реализует интерфейс error
func (e *ExternalServiceError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s service error [%s]: %s: %v", e.Service, e.Code, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("%s service error [%s]: %s", e.Service, e.Code, e.Message)
}

// Unwrap возвращает оригинальную ошибку
func (e *ExternalServiceError) Unwrap() error {
	return e.OriginalErr
}

// Is относит любую ошибку внешнего сервиса к ErrProviderFailure
func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrProviderFailure
}

// NewExternalServiceError создает новую ошибку внешнего сервиса
func NewExternalServiceError(service, code, message string, statusCode int, err error) *ExternalServiceError {
	return &ExternalServiceError{
		Service:     service,
		Code:        code,
		Message:     message,
		StatusCode:  statusCode,
		OriginalErr: err,
	}
}

// NotConfiguredError ошибка конфигурации конкретной интеграции
func NotConfiguredError(integration string) error {
	return fmt.Errorf("%w: %s", ErrNotConfigured, integration)
}
