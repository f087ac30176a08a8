package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

// klarnaGateway Klarna Payments сессия плюс Hosted Payment Page для редиректа
type klarnaGateway struct {
	client   *transport.Client
	baseURL  string
	username string
	password string
	log      *logger.Logger
}

func (g *klarnaGateway) Name() string { return string(domain.ProviderKlarna) }

func (g *klarnaGateway) Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error) {
	session := map[string]any{
		"purchase_country":    "DE",
		"purchase_currency":   domain.Currency,
		"locale":              localeTag(c.Request.Lang()),
		"order_amount":        c.Request.Amount,
		"order_tax_amount":    0,
		"merchant_reference1": c.Request.BookingID,
		"order_lines": []map[string]any{{
			"type":             "digital",
			"reference":        c.Request.BookingID,
			"name":             description(c),
			"quantity":         1,
			"unit_price":       c.Request.Amount,
			"tax_rate":         0,
			"total_amount":     c.Request.Amount,
			"total_tax_amount": 0,
		}},
	}

	var kp struct {
		SessionID string `json:"session_id"`
	}
	if err := g.post(ctx, "/payments/v1/sessions", session, &kp); err != nil {
		return nil, err
	}

	hpp := map[string]any{
		"payment_session_url": g.baseURL + "/payments/v1/sessions/" + kp.SessionID,
		"merchant_urls": map[string]string{
			"success": c.ReturnURL,
			"cancel":  c.CancelURL,
			"back":    c.CancelURL,
			"failure": c.CancelURL,
		},
	}

	var page struct {
		SessionID   string `json:"session_id"`
		RedirectURL string `json:"redirect_url"`
	}
	if err := g.post(ctx, "/hpp/v1/sessions", hpp, &page); err != nil {
		return nil, err
	}

	g.log.Infow("Klarna session created", "sessionID", kp.SessionID, "bookingID", c.Request.BookingID)
	return domain.PaymentPending{PaymentID: kp.SessionID, RedirectURL: page.RedirectURL}, nil
}

func (g *klarnaGateway) post(ctx context.Context, path string, payload, out any) error {
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, g.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.username, g.password)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("klarna: %w", err)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("klarna %s: %w", path, err)
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("klarna: %w", err)
	}
	return nil
}
