package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// paypalGateway Orders v2; токен получается по client credentials
type paypalGateway struct {
	client  *transport.Client
	baseURL string
	tokens  oauth2.TokenSource
	log     *logger.Logger
}

func newPayPalGateway(clientID, secret, baseURL string, client *transport.Client, log *logger.Logger) *paypalGateway {
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: secret,
		TokenURL:     baseURL + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, client.HTTPClient())
	return &paypalGateway{
		client:  client,
		baseURL: baseURL,
		tokens:  cc.TokenSource(tokenCtx),
		log:     log,
	}
}

func (g *paypalGateway) Name() string { return string(domain.ProviderPayPal) }

type paypalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type paypalOrder struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []paypalLink `json:"links"`
}

func (g *paypalGateway) Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error) {
	token, err := g.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to obtain access token: %w", err)
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"reference_id": c.Request.BookingID,
			"description":  description(c),
			"amount": map[string]string{
				"currency_code": domain.Currency,
				"value":         decimalAmount(c.Request.Amount),
			},
		}},
		"application_context": map[string]string{
			"return_url":  c.ReturnURL,
			"cancel_url":  c.CancelURL,
			"user_action": "PAY_NOW",
			"locale":      localeTag(c.Request.Lang()),
		},
	}
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, g.baseURL+"/v2/checkout/orders", payload)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)
	req.Header.Set("PayPal-Request-Id", c.Request.BookingID+"-"+c.Method.ID)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}

	var order paypalOrder
	if err := resp.DecodeJSON(&order); err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}

	g.log.Infow("PayPal order created", "orderID", order.ID, "status", order.Status, "bookingID", c.Request.BookingID)
	return paypalOutcome(order), nil
}

func paypalOutcome(o paypalOrder) domain.PaymentOutcome {
	switch o.Status {
	case "COMPLETED":
		return domain.PaymentCompleted{PaymentID: o.ID}
	case "VOIDED":
		return domain.PaymentFailed{PaymentID: o.ID, Cancelled: true, Reason: ReasonCancelled}
	case "CREATED", "SAVED", "APPROVED", "PAYER_ACTION_REQUIRED":
		var redirect string
		for _, l := range o.Links {
			if l.Rel == "approve" || l.Rel == "payer-action" {
				redirect = l.Href
				break
			}
		}
		return domain.PaymentPending{PaymentID: o.ID, RedirectURL: redirect}
	default:
		return domain.PaymentFailed{PaymentID: o.ID, Reason: ReasonDeclined}
	}
}
