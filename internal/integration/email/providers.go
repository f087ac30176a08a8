package email

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medusa-studio/booking-api/internal/integration/transport"
)

// Message готовое к отправке письмо
type Message struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// Provider отправляет одно письмо одним запросом и возвращает id сообщения провайдера
type Provider interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

// Endpoints базовые адреса API провайдеров
type Endpoints struct {
	Resend   string
	SendGrid string
	Mailgun  string
	Postmark string
}

// DefaultEndpoints боевые адреса
var DefaultEndpoints = Endpoints{
	Resend:   "https://api.resend.com",
	SendGrid: "https://api.sendgrid.com",
	Mailgun:  "https://api.eu.mailgun.net",
	Postmark: "https://api.postmarkapp.com",
}

type resendProvider struct {
	client  *transport.Client
	baseURL string
	apiKey  string
}

func (p *resendProvider) Name() string { return "resend" }

func (p *resendProvider) Send(ctx context.Context, msg Message) (string, error) {
	payload := map[string]any{
		"from":    msg.From,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, p.baseURL+"/emails", payload)
	if err != nil {
		return "", err
	}
	transport.Bearer(req, p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	_ = resp.DecodeJSON(&out)
	return out.ID, nil
}

type sendGridProvider struct {
	client  *transport.Client
	baseURL string
	apiKey  string
}

func (p *sendGridProvider) Name() string { return "sendgrid" }

func (p *sendGridProvider) Send(ctx context.Context, msg Message) (string, error) {
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": msg.From},
		"subject": msg.Subject,
		"content": []map[string]string{{"type": "text/html", "value": msg.HTML}},
	}
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, p.baseURL+"/v3/mail/send", payload)
	if err != nil {
		return "", err
	}
	transport.Bearer(req, p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}
	// тело ответа 202 пустое, id приходит в заголовке
	return resp.Header.Get("X-Message-Id"), nil
}

type mailgunProvider struct {
	client  *transport.Client
	baseURL string
	apiKey  string
	domain  string
}

func (p *mailgunProvider) Name() string { return "mailgun" }

func (p *mailgunProvider) Send(ctx context.Context, msg Message) (string, error) {
	form := url.Values{}
	form.Set("from", msg.From)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("html", msg.HTML)

	endpoint := p.baseURL + "/v3/" + url.PathEscape(p.domain) + "/messages"
	req, err := transport.NewFormRequest(ctx, http.MethodPost, endpoint, form)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth("api", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	_ = resp.DecodeJSON(&out)
	return out.ID, nil
}

type postmarkProvider struct {
	client  *transport.Client
	baseURL string
	token   string
}

func (p *postmarkProvider) Name() string { return "postmark" }

func (p *postmarkProvider) Send(ctx context.Context, msg Message) (string, error) {
	payload := map[string]string{
		"From":          msg.From,
		"To":            msg.To,
		"Subject":       msg.Subject,
		"HtmlBody":      msg.HTML,
		"MessageStream": "outbound",
	}
	req, err := transport.NewJSONRequest(ctx, http.MethodPost, p.baseURL+"/email", payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Postmark-Server-Token", p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	var out struct {
		MessageID string `json:"MessageID"`
	}
	_ = resp.DecodeJSON(&out)
	return out.MessageID, nil
}
