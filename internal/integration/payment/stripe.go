package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

const metadataBookingIDKey = "booking_id"

// stripeGateway карты и SEPA через PaymentIntent
type stripeGateway struct {
	client *client.API
	log    *logger.Logger
}

func newStripeGateway(apiKey, baseURL string, httpClient *http.Client, log *logger.Logger) *stripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(baseURL),
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     log.SugaredLogger,
	})
	sc := &client.API{}
	sc.Init(apiKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &stripeGateway{client: sc, log: log}
}

func (g *stripeGateway) Name() string { return string(domain.ProviderStripe) }

// Charge создает PaymentIntent. Без платежного метода Stripe возвращает requires_payment_method,
// и платеж подтверждается на клиенте через client secret.
func (g *stripeGateway) Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error) {
	methodType := "card"
	if c.Method.ID == "sepa" {
		methodType = "sepa_debit"
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(c.Request.Amount),
		Currency:           stripe.String(string(stripe.CurrencyEUR)),
		PaymentMethodTypes: stripe.StringSlice([]string{methodType}),
		ReceiptEmail:       stripe.String(c.Request.CustomerEmail),
		Description:        stripe.String(description(c)),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())
	params.AddMetadata(metadataBookingIDKey, c.Request.BookingID)
	for k, v := range c.Request.Metadata {
		params.AddMetadata(k, fmt.Sprint(v))
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		logStripeError(g.log, "CreatePaymentIntent", err)
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	g.log.Infow("Stripe payment intent created", "paymentIntentID", pi.ID, "status", string(pi.Status), "bookingID", c.Request.BookingID)
	return stripeOutcome(pi), nil
}

func stripeOutcome(pi *stripe.PaymentIntent) domain.PaymentOutcome {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return domain.PaymentCompleted{PaymentID: pi.ID}
	case stripe.PaymentIntentStatusCanceled:
		return domain.PaymentFailed{PaymentID: pi.ID, Cancelled: true, Reason: ReasonCancelled}
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresCapture,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		pending := domain.PaymentPending{PaymentID: pi.ID, ClientSecret: pi.ClientSecret}
		if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil {
			pending.RedirectURL = pi.NextAction.RedirectToURL.URL
		}
		return pending
	default:
		return domain.PaymentFailed{PaymentID: pi.ID, Reason: ReasonDeclined}
	}
}

// logStripeError логирует детали ошибки Stripe
func logStripeError(log *logger.Logger, operation string, err error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		log.Errorw("Stripe API error",
			"operation", operation,
			"type", string(stripeErr.Type),
			"code", string(stripeErr.Code),
			"param", stripeErr.Param,
			"message", stripeErr.Msg,
			"request_id", stripeErr.RequestID,
			"status_code", stripeErr.HTTPStatusCode,
		)
	} else {
		log.Errorw("Non-Stripe error during Stripe operation",
			"operation", operation,
			"error", err,
		)
	}
}
