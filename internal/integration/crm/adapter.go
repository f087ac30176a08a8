// Package crm синхронизация контактов и бронирований с Zoho CRM.
// Все вызовы best-effort: ошибки возвращаются как неуспешный IntegrationResult,
// решение о том, что с ними делать, принимает вызывающая сторона.
package crm

import (
	"context"
	"net/http"
	"time"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/internal/registry"
	"github.com/medusa-studio/booking-api/internal/repository"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"golang.org/x/oauth2"
)

const (
	integrationName = "crm"
	providerName    = "zoho"
)

// CRM контракт CRM адаптера
type CRM interface {
	UpsertContact(ctx context.Context, c Contact) domain.IntegrationResult[string]
	CreateBooking(ctx context.Context, d Deal) domain.IntegrationResult[string]
	UpdateBookingStatus(ctx context.Context, id, stage, note string) domain.IntegrationResult[string]
	Configured() bool
}

// Endpoints адреса Zoho
type Endpoints struct {
	API      string
	Accounts string
}

// RegionEndpoints адреса Zoho для дата-центра region (eu, com, in ...)
func RegionEndpoints(region string) Endpoints {
	if region == "" {
		region = "eu"
	}
	return Endpoints{
		API:      "https://www.zohoapis." + region + "/crm/v2",
		Accounts: "https://accounts.zoho." + region,
	}
}

// Adapter реализация CRM поверх Zoho
type Adapter struct {
	zoho    *zohoClient
	metrics metrics.IntegrationMetrics
	log     *logger.Logger
}

type options struct {
	endpoints Endpoints
	cache     repository.TokenCache
	metrics   metrics.IntegrationMetrics
}

// Option настройка адаптера
type Option func(*options)

// WithEndpoints переопределяет адреса Zoho
func WithEndpoints(e Endpoints) Option {
	return func(o *options) { o.endpoints = e }
}

// WithTokenCache общий кеш access token (Redis)
func WithTokenCache(c repository.TokenCache) Option {
	return func(o *options) { o.cache = c }
}

// WithMetrics подключает метрики вызовов
func WithMetrics(m metrics.IntegrationMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewAdapter создает CRM адаптер. Если Zoho не настроен, адаптер отвечает неуспехом без сетевых вызовов.
func NewAdapter(reg *registry.Registry, client *transport.Client, region string, log *logger.Logger, opts ...Option) *Adapter {
	o := options{
		endpoints: RegionEndpoints(region),
		metrics:   metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = repository.NewMemoryTokenCache()
	}

	a := &Adapter{metrics: o.metrics, log: log.Named("crm")}
	if !reg.IsAvailable(registry.CRMZoho) {
		return a
	}

	oauthCfg := &oauth2.Config{
		ClientID:     reg.Value(config.KeyZohoClientID),
		ClientSecret: reg.Value(config.KeyZohoClientSecret),
		Endpoint: oauth2.Endpoint{
			TokenURL:  o.endpoints.Accounts + "/oauth/v2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, client.HTTPClient())
	base := oauthCfg.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: reg.Value(config.KeyZohoRefreshToken)})

	a.zoho = &zohoClient{
		client:  client,
		apiBase: o.endpoints.API,
		tokens: &cachedTokenSource{
			key:     TokenCacheKey,
			cache:   o.cache,
			base:    base,
			timeout: client.Timeout(),
			log:     a.log,
		},
		log: a.log,
	}
	return a
}

// Configured true, если Zoho настроен
func (a *Adapter) Configured() bool {
	return a.zoho != nil
}

// UpsertContact ищет контакт по email и обновляет его, иначе создает новый. Возвращает id контакта.
func (a *Adapter) UpsertContact(ctx context.Context, c Contact) domain.IntegrationResult[string] {
	return a.call("upsert_contact", func() (string, error) {
		id, err := a.zoho.findContactByEmail(ctx, c.Email)
		if err != nil {
			return "", err
		}
		if id != "" {
			if _, err := a.zoho.write(ctx, http.MethodPut, "/Contacts/"+id, contactRecord(c)); err != nil {
				return "", err
			}
			return id, nil
		}
		return a.zoho.write(ctx, http.MethodPost, "/Contacts", contactRecord(c))
	})
}

// CreateBooking создает сделку для бронирования. Возвращает id сделки.
func (a *Adapter) CreateBooking(ctx context.Context, d Deal) domain.IntegrationResult[string] {
	return a.call("create_booking", func() (string, error) {
		return a.zoho.write(ctx, http.MethodPost, "/Deals", dealRecord(d))
	})
}

// UpdateBookingStatus меняет стадию сделки и дописывает заметку
func (a *Adapter) UpdateBookingStatus(ctx context.Context, id, stage, note string) domain.IntegrationResult[string] {
	return a.call("update_booking_status", func() (string, error) {
		record := map[string]any{"Stage": stage}
		if note != "" {
			record["Description"] = note
		}
		return a.zoho.write(ctx, http.MethodPut, "/Deals/"+id, record)
	})
}

func (a *Adapter) call(op string, fn func() (string, error)) domain.IntegrationResult[string] {
	if a.zoho == nil {
		a.metrics.ObserveCall(integrationName, providerName, metrics.OutcomeSkipped, 0)
		return domain.FailedResult[string]("%v", domain.NotConfiguredError(integrationName))
	}

	start := time.Now()
	id, err := fn()
	a.metrics.ObserveCall(integrationName, providerName, metrics.Outcome(err == nil), time.Since(start))
	if err != nil {
		a.log.Warnw("CRM call failed", "operation", op, "error", err)
		return domain.FailedResult[string]("%v", err)
	}

	a.log.Debugw("CRM call succeeded", "operation", op, "id", id)
	return domain.Succeeded(id, id)
}
