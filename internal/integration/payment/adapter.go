// Package payment платежный адаптер: статический каталог способов оплаты и
// по одному шлюзу на провайдера (Stripe, PayPal, Klarna, Sofort, Adyen).
// Провайдер определяется способом оплаты, переключения между провайдерами нет.
package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/internal/registry"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

const integrationName = "payment"

// Processor контракт обработки платежа
type Processor interface {
	Process(ctx context.Context, method domain.PaymentMethod, req domain.PaymentRequest) domain.IntegrationResult[domain.PaymentOutcome]
	Methods() []domain.PaymentMethod
	Configured() bool
}

// Adapter реализация Processor
type Adapter struct {
	reg       *registry.Registry
	client    *transport.Client
	endpoints Endpoints
	returnURL string
	metrics   metrics.IntegrationMetrics
	log       *logger.Logger

	mu       sync.Mutex
	gateways map[domain.PaymentProvider]cachedGateway
}

// cachedGateway шлюз, собранный для конкретного набора ключей провайдера
type cachedGateway struct {
	fingerprint string
	gw          Gateway
}

// Option настройка адаптера
type Option func(*Adapter)

// WithEndpoints переопределяет адреса API провайдеров
func WithEndpoints(e Endpoints) Option {
	return func(a *Adapter) { a.endpoints = e }
}

// WithReturnURL адрес, куда провайдер возвращает клиента после редиректа
func WithReturnURL(u string) Option {
	return func(a *Adapter) { a.returnURL = u }
}

// WithMetrics подключает метрики вызовов
func WithMetrics(m metrics.IntegrationMetrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// NewAdapter создает платежный адаптер
func NewAdapter(reg *registry.Registry, client *transport.Client, log *logger.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		reg:       reg,
		client:    client,
		endpoints: DefaultEndpoints,
		metrics:   metrics.NewNop(),
		log:       log.Named("payment"),
		gateways:  make(map[domain.PaymentProvider]cachedGateway),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Methods способы оплаты, доступные с текущей конфигурацией
func (a *Adapter) Methods() []domain.PaymentMethod {
	return Available(a.reg)
}

// Configured true, если настроен хотя бы один платежный провайдер
func (a *Adapter) Configured() bool {
	return a.reg.AnyAvailable(registry.PaymentCapabilities)
}

// Process отправляет платеж провайдеру способа оплаты ровно один раз.
// Success true для completed и pending; для failed/cancelled Data содержит PaymentFailed.
func (a *Adapter) Process(ctx context.Context, method domain.PaymentMethod, req domain.PaymentRequest) domain.IntegrationResult[domain.PaymentOutcome] {
	provider := string(method.Provider)

	gw, err := a.gateway(method.Provider)
	if err != nil {
		a.log.Errorw("Payment provider not configured", "provider", provider, "method", method.ID, "error", err)
		a.metrics.ObserveCall(integrationName, provider, metrics.OutcomeSkipped, 0)
		return failed(domain.PaymentFailed{Reason: ReasonNotConfigured}, err.Error())
	}

	charge := Charge{
		Method:    method,
		Request:   req,
		ReturnURL: withBooking(a.returnURL, req.BookingID, "status", "success"),
		CancelURL: withBooking(a.returnURL, req.BookingID, "status", "cancelled"),
	}

	start := time.Now()
	outcome, err := gw.Charge(ctx, charge)
	if err != nil {
		a.metrics.ObserveCall(integrationName, provider, metrics.OutcomeFailure, time.Since(start))
		a.log.Warnw("Payment provider call failed", "provider", provider, "method", method.ID, "bookingID", req.BookingID, "error", err)
		return failed(domain.PaymentFailed{Reason: ReasonProviderError}, err.Error())
	}

	if f, ok := outcome.(domain.PaymentFailed); ok {
		a.metrics.ObserveCall(integrationName, provider, metrics.OutcomeFailure, time.Since(start))
		a.log.Infow("Payment not accepted", "provider", provider, "paymentID", f.PaymentID, "status", f.Status(), "bookingID", req.BookingID)
		return failed(f, f.Reason)
	}

	a.metrics.ObserveCall(integrationName, provider, metrics.OutcomeSuccess, time.Since(start))
	return domain.Succeeded(outcome, domain.PaymentIDOf(outcome))
}

func failed(outcome domain.PaymentFailed, msg string) domain.IntegrationResult[domain.PaymentOutcome] {
	return domain.IntegrationResult[domain.PaymentOutcome]{
		Data:              outcome,
		Error:             msg,
		ProviderMessageID: outcome.PaymentID,
	}
}

// gateway возвращает шлюз провайдера. Шлюз переиспользуется между платежами, пока не изменились
// его ключи: так PayPal держит полученный OAuth токен до истечения.
func (a *Adapter) gateway(p domain.PaymentProvider) (Gateway, error) {
	c, ok := providerCapability[p]
	if !ok || !a.reg.IsAvailable(c) {
		return nil, domain.NotConfiguredError(integrationName + ":" + string(p))
	}

	values := make([]string, 0, len(registry.RequiredKeys[c]))
	for _, key := range registry.RequiredKeys[c] {
		values = append(values, a.reg.Value(key))
	}
	fingerprint := strings.Join(values, "\x00")

	a.mu.Lock()
	defer a.mu.Unlock()

	if cached, ok := a.gateways[p]; ok && cached.fingerprint == fingerprint {
		return cached.gw, nil
	}
	gw, err := a.build(p)
	if err != nil {
		return nil, err
	}
	a.gateways[p] = cachedGateway{fingerprint: fingerprint, gw: gw}
	return gw, nil
}

// build строит шлюз провайдера из текущей конфигурации
func (a *Adapter) build(p domain.PaymentProvider) (Gateway, error) {
	switch p {
	case domain.ProviderStripe:
		return newStripeGateway(a.reg.Value(config.KeyStripeSecretKey), a.endpoints.Stripe, a.client.HTTPClient(), a.log), nil
	case domain.ProviderPayPal:
		return newPayPalGateway(a.reg.Value(config.KeyPayPalClientID), a.reg.Value(config.KeyPayPalClientSecret), a.endpoints.PayPal, a.client, a.log), nil
	case domain.ProviderKlarna:
		return &klarnaGateway{
			client:   a.client,
			baseURL:  a.endpoints.Klarna,
			username: a.reg.Value(config.KeyKlarnaUsername),
			password: a.reg.Value(config.KeyKlarnaPassword),
			log:      a.log,
		}, nil
	case domain.ProviderSofort:
		gw, err := newSofortGateway(a.reg.Value(config.KeySofortConfigKey), a.endpoints.Sofort, a.client, a.log)
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return &adyenGateway{
			client:          a.client,
			baseURL:         a.endpoints.Adyen,
			apiKey:          a.reg.Value(config.KeyAdyenAPIKey),
			merchantAccount: a.reg.Value(config.KeyAdyenMerchantAccount),
			log:             a.log,
		}, nil
	}
}
