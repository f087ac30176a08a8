package payment

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

// errSofortConfigKey ключ конфигурации не в формате customer_id:project_id:api_key
var errSofortConfigKey = errors.New("sofort: config key must be customer_id:project_id:api_key")

// sofortGateway Sofortüberweisung через XML API с редиректом на payment_url
type sofortGateway struct {
	client     *transport.Client
	baseURL    string
	customerID string
	projectID  string
	apiKey     string
	log        *logger.Logger
}

func newSofortGateway(configKey, baseURL string, client *transport.Client, log *logger.Logger) (*sofortGateway, error) {
	parts := strings.Split(configKey, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, errSofortConfigKey
	}
	return &sofortGateway{
		client:     client,
		baseURL:    baseURL,
		customerID: parts[0],
		projectID:  parts[1],
		apiKey:     parts[2],
		log:        log,
	}, nil
}

func (g *sofortGateway) Name() string { return string(domain.ProviderSofort) }

type sofortMultipay struct {
	XMLName       xml.Name `xml:"multipay"`
	ProjectID     string   `xml:"project_id"`
	Amount        string   `xml:"amount"`
	CurrencyCode  string   `xml:"currency_code"`
	Reasons       []string `xml:"reasons>reason"`
	UserVariables []string `xml:"user_variables>user_variable"`
	SuccessURL    string   `xml:"success_url,omitempty"`
	AbortURL      string   `xml:"abort_url,omitempty"`
	Language      string   `xml:"language_code"`
	Su            struct{} `xml:"su"`
}

type sofortResponse struct {
	XMLName     xml.Name
	Transaction string `xml:"transaction"`
	PaymentURL  string `xml:"payment_url"`
	Errors      []struct {
		Code    string `xml:"code"`
		Message string `xml:"message"`
	} `xml:"error"`
}

func (g *sofortGateway) Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error) {
	body, err := xml.Marshal(sofortMultipay{
		ProjectID:     g.projectID,
		Amount:        decimalAmount(c.Request.Amount),
		CurrencyCode:  domain.Currency,
		Reasons:       []string{"Medusa " + c.Request.BookingID},
		UserVariables: []string{c.Request.BookingID},
		SuccessURL:    c.ReturnURL,
		AbortURL:      c.CancelURL,
		Language:      string(c.Request.Lang()),
	})
	if err != nil {
		return nil, fmt.Errorf("sofort: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/xml", bytes.NewReader(append([]byte(xml.Header), body...)))
	if err != nil {
		return nil, fmt.Errorf("sofort: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=UTF-8")
	req.Header.Set("Accept", "application/xml")
	req.SetBasicAuth(g.customerID, g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sofort: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("sofort: %w", err)
	}

	var out sofortResponse
	if err := xml.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("sofort: failed to decode response: %w", err)
	}
	// ошибки валидации приходят со статусом 200 в корне <errors>
	if out.XMLName.Local == "errors" || len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Code+" "+e.Message)
		}
		return nil, fmt.Errorf("sofort: %s", strings.Join(msgs, "; "))
	}

	g.log.Infow("Sofort transaction created", "transaction", out.Transaction, "bookingID", c.Request.BookingID)
	return domain.PaymentPending{PaymentID: out.Transaction, RedirectURL: out.PaymentURL}, nil
}
