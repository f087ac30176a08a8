// Package email адаптер отправки писем: выбирает первого настроенного провайдера
// (Resend, SendGrid, Mailgun, Postmark), связывает шаблон и делает ровно один запрос.
package email

import (
	"context"
	"time"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/internal/registry"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

const integrationName = "email"

// Sender контракт отправки письма по шаблону
type Sender interface {
	Send(ctx context.Context, to, from string, tmpl TemplateName, data map[string]string, lang domain.Language) domain.IntegrationResult[string]
}

// Adapter реализация Sender поверх реестра провайдеров
type Adapter struct {
	reg       *registry.Registry
	client    *transport.Client
	endpoints Endpoints
	metrics   metrics.IntegrationMetrics
	log       *logger.Logger
}

// Option настройка адаптера
type Option func(*Adapter)

// WithEndpoints переопределяет адреса API провайдеров
func WithEndpoints(e Endpoints) Option {
	return func(a *Adapter) { a.endpoints = e }
}

// WithMetrics подключает метрики вызовов
func WithMetrics(m metrics.IntegrationMetrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// NewAdapter создает email адаптер
func NewAdapter(reg *registry.Registry, client *transport.Client, log *logger.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		reg:       reg,
		client:    client,
		endpoints: DefaultEndpoints,
		metrics:   metrics.NewNop(),
		log:       log.Named("email"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured true, если доступен хотя бы один email провайдер
func (a *Adapter) Configured() bool {
	return a.reg.AnyAvailable(registry.EmailPreference)
}

// Send отправляет письмо через первого доступного провайдера. Повторов нет.
func (a *Adapter) Send(ctx context.Context, to, from string, tmpl TemplateName, data map[string]string, lang domain.Language) domain.IntegrationResult[string] {
	provider, err := a.provider()
	if err != nil {
		a.log.Errorw("No email provider configured", "template", tmpl)
		a.metrics.ObserveCall(integrationName, "none", metrics.OutcomeSkipped, 0)
		return domain.FailedResult[string]("%v", err)
	}

	rendered, err := Render(tmpl, lang, data)
	if err != nil {
		a.log.Errorw("Failed to render email template", "template", tmpl, "language", lang, "error", err)
		return domain.FailedResult[string]("%v", err)
	}

	start := time.Now()
	msgID, err := provider.Send(ctx, Message{
		To:      to,
		From:    from,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	})
	a.metrics.ObserveCall(integrationName, provider.Name(), metrics.Outcome(err == nil), time.Since(start))
	if err != nil {
		a.log.Warnw("Email provider rejected message", "provider", provider.Name(), "template", tmpl, "error", err)
		return domain.FailedResult[string]("%s: %v", provider.Name(), err)
	}

	a.log.Infow("Email sent", "provider", provider.Name(), "template", tmpl, "message_id", msgID)
	return domain.Succeeded(msgID, msgID)
}

// provider выбирает первого настроенного провайдера в порядке предпочтения
func (a *Adapter) provider() (Provider, error) {
	c, ok := a.reg.FirstAvailable(registry.EmailPreference)
	if !ok {
		return nil, domain.NotConfiguredError(integrationName)
	}

	switch c {
	case registry.EmailResend:
		return &resendProvider{client: a.client, baseURL: a.endpoints.Resend, apiKey: a.reg.Value(config.KeyResendAPIKey)}, nil
	case registry.EmailSendGrid:
		return &sendGridProvider{client: a.client, baseURL: a.endpoints.SendGrid, apiKey: a.reg.Value(config.KeySendGridAPIKey)}, nil
	case registry.EmailMailgun:
		return &mailgunProvider{
			client:  a.client,
			baseURL: a.endpoints.Mailgun,
			apiKey:  a.reg.Value(config.KeyMailgunAPIKey),
			domain:  a.reg.Value(config.KeyMailgunDomain),
		}, nil
	default:
		return &postmarkProvider{client: a.client, baseURL: a.endpoints.Postmark, token: a.reg.Value(config.KeyPostmarkServerToken)}, nil
	}
}
