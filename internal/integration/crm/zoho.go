package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"golang.org/x/oauth2"
)

// errNoRecord Zoho вернул пустой список записей
var errNoRecord = errors.New("zoho: response contains no record")

// zohoClient тонкий клиент Zoho CRM v2
type zohoClient struct {
	client  *transport.Client
	apiBase string
	tokens  oauth2.TokenSource
	log     *logger.Logger
}

type zohoRecordResult struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Details struct {
		ID string `json:"id"`
	} `json:"details"`
}

type zohoWriteResponse struct {
	Data []zohoRecordResult `json:"data"`
}

type zohoSearchResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (z *zohoClient) do(ctx context.Context, method, path string, payload any) (*transport.Response, error) {
	tok, err := z.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("zoho: failed to obtain access token: %w", err)
	}

	req, err := transport.NewJSONRequest(ctx, method, z.apiBase+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+tok.AccessToken)

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoho: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("zoho %s %s: %w", method, path, err)
	}
	return resp, nil
}

// write отправляет одну запись и возвращает ее id
func (z *zohoClient) write(ctx context.Context, method, path string, record map[string]any) (string, error) {
	resp, err := z.do(ctx, method, path, map[string]any{"data": []map[string]any{record}})
	if err != nil {
		return "", err
	}

	var out zohoWriteResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", fmt.Errorf("zoho: %w", err)
	}
	if len(out.Data) == 0 {
		return "", errNoRecord
	}
	r := out.Data[0]
	if r.Status != "success" {
		return "", fmt.Errorf("zoho: %s: %s", r.Code, r.Message)
	}
	return r.Details.ID, nil
}

// findContactByEmail id контакта или "" если не найден (Zoho отвечает 204)
func (z *zohoClient) findContactByEmail(ctx context.Context, email string) (string, error) {
	resp, err := z.do(ctx, http.MethodGet, "/Contacts/search?email="+url.QueryEscape(email), nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return "", nil
	}

	var out zohoSearchResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", fmt.Errorf("zoho: %w", err)
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	return out.Data[0].ID, nil
}

func contactRecord(c Contact) map[string]any {
	record := map[string]any{
		"First_Name":  c.FirstName,
		"Last_Name":   c.LastName,
		"Email":       c.Email,
		"Phone":       c.Phone,
		"Lead_Source": leadSource,
	}
	if c.Description != "" {
		record["Description"] = c.Description
	}
	return record
}

func dealRecord(d Deal) map[string]any {
	record := map[string]any{
		"Deal_Name":    d.Name,
		"Stage":        d.Stage,
		"Currency":     domain.Currency,
		"Closing_Date": d.ClosingDate,
		"Lead_Source":  leadSource,
		"Description":  d.Description,
	}
	if d.ContactID != "" {
		record["Contact_Name"] = map[string]string{"id": d.ContactID}
	}
	return record
}
