package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

const adyenAPIVersion = "v71"

// adyenGateway Apple Pay через Adyen Checkout /payments, ответ синхронный
type adyenGateway struct {
	client          *transport.Client
	baseURL         string
	apiKey          string
	merchantAccount string
	log             *logger.Logger
}

func (g *adyenGateway) Name() string { return string(domain.ProviderAdyen) }

type adyenResponse struct {
	PSPReference  string `json:"pspReference"`
	ResultCode    string `json:"resultCode"`
	RefusalReason string `json:"refusalReason"`
	Action        *struct {
		URL string `json:"url"`
	} `json:"action"`
}

func (g *adyenGateway) Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error) {
	paymentMethod := map[string]any{"type": "applepay"}
	if token, ok := c.Request.Metadata["applePayToken"].(string); ok && token != "" {
		paymentMethod["applePayToken"] = token
	}

	payload := map[string]any{
		"amount": map[string]any{
			"currency": domain.Currency,
			"value":    c.Request.Amount,
		},
		"reference":       c.Request.BookingID,
		"merchantAccount": g.merchantAccount,
		"paymentMethod":   paymentMethod,
		"returnUrl":       c.ReturnURL,
		"shopperEmail":    c.Request.CustomerEmail,
		"shopperLocale":   localeTag(c.Request.Lang()),
	}
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, g.baseURL+"/"+adyenAPIVersion+"/payments", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", g.apiKey)
	req.Header.Set("Idempotency-Key", c.Request.BookingID+"-"+c.Method.ID)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adyen: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("adyen: %w", err)
	}

	var out adyenResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("adyen: %w", err)
	}

	g.log.Infow("Adyen payment processed", "pspReference", out.PSPReference, "resultCode", out.ResultCode, "bookingID", c.Request.BookingID)
	if out.RefusalReason != "" {
		g.log.Warnw("Adyen refusal", "pspReference", out.PSPReference, "reason", out.RefusalReason)
	}
	return adyenOutcome(out), nil
}

func adyenOutcome(r adyenResponse) domain.PaymentOutcome {
	switch r.ResultCode {
	case "Authorised":
		return domain.PaymentCompleted{PaymentID: r.PSPReference}
	case "Cancelled":
		return domain.PaymentFailed{PaymentID: r.PSPReference, Cancelled: true, Reason: ReasonCancelled}
	case "Pending", "Received", "RedirectShopper", "IdentifyShopper", "ChallengeShopper", "PresentToShopper":
		pending := domain.PaymentPending{PaymentID: r.PSPReference}
		if r.Action != nil {
			pending.RedirectURL = r.Action.URL
		}
		return pending
	default:
		// Refused, Error и неизвестные коды
		return domain.PaymentFailed{PaymentID: r.PSPReference, Reason: ReasonDeclined}
	}
}
