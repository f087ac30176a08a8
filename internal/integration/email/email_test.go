package email

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/internal/registry"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	out := Bind("Hallo {{ firstName }}, Termin {{date}} um {{time}}", map[string]string{
		"firstName": "Anna",
		"date":      "2024-06-01",
	})
	assert.Equal(t, "Hallo Anna, Termin 2024-06-01 um {{time}}", out)
}

func TestRender(t *testing.T) {
	data := map[string]string{"firstName": "Anna", "studioName": "Medusa Tattoo"}

	de, err := Render(TemplateBookingConfirmation, domain.LanguageDE, data)
	require.NoError(t, err)
	assert.Equal(t, "Ihre Terminanfrage bei Medusa Tattoo", de.Subject)
	assert.Contains(t, de.HTML, "Hallo Anna")

	en, err := Render(TemplateBookingConfirmation, domain.LanguageEN, data)
	require.NoError(t, err)
	assert.Equal(t, "Your booking request at Medusa Tattoo", en.Subject)

	// студийные уведомления только на немецком
	notif, err := Render(TemplateBookingNotification, domain.LanguageDE, map[string]string{"bookingId": "MEDUSA-1", "fullName": "Anna Schmidt"})
	require.NoError(t, err)
	assert.Equal(t, "Neue Terminanfrage MEDUSA-1 von Anna Schmidt", notif.Subject)

	// уведомления студии есть только на немецком
	_, err = Render(TemplateBookingNotification, domain.LanguageEN, nil)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
	_, err = Render(TemplateContactNotification, domain.LanguageEN, nil)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))

	_, err = Render("unknown", domain.LanguageDE, nil)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
}

func TestTemplates_AllHaveGerman(t *testing.T) {
	for name, byLang := range templates {
		_, ok := byLang[domain.LanguageDE]
		assert.True(t, ok, "template %s has no DE variant", name)
	}

	// письма клиенту уходят на языке запроса
	for _, name := range []TemplateName{TemplateBookingConfirmation, TemplateContactConfirmation, TemplatePaymentConfirmation} {
		_, ok := templates[name][domain.LanguageEN]
		assert.True(t, ok, "customer template %s has no EN variant", name)
	}
}

func newAdapter(t *testing.T, values config.MapSource, srv *httptest.Server) *Adapter {
	t.Helper()
	endpoints := Endpoints{Resend: srv.URL, SendGrid: srv.URL, Mailgun: srv.URL, Postmark: srv.URL}
	return NewAdapter(
		registry.New(values),
		transport.New(time.Second, logger.NewNop()),
		logger.NewNop(),
		WithEndpoints(endpoints),
	)
}

func TestAdapter_SendGrid(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Your booking request at Medusa Tattoo", body["subject"])

		w.Header().Set("X-Message-Id", "sg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	// Postmark тоже настроен, но SendGrid раньше в порядке предпочтения
	a := newAdapter(t, config.MapSource{
		config.KeySendGridAPIKey:      "SG.key",
		config.KeyPostmarkServerToken: "pm",
	}, srv)

	res := a.Send(context.Background(), "anna@example.com", "studio@medusa.de",
		TemplateBookingConfirmation, map[string]string{"studioName": "Medusa Tattoo"}, domain.LanguageEN)

	assert.True(t, res.Success)
	assert.Equal(t, "sg-123", res.ProviderMessageID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAdapter_Resend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"re-1"}`))
	}))
	defer srv.Close()

	a := newAdapter(t, config.MapSource{config.KeyResendAPIKey: "re_key"}, srv)
	res := a.Send(context.Background(), "a@b.de", "s@m.de", TemplateContactConfirmation, nil, domain.LanguageDE)

	assert.True(t, res.Success)
	assert.Equal(t, "re-1", res.Data)
}

func TestAdapter_Mailgun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mg.medusa.de/messages", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-1", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.de", r.PostForm.Get("to"))
		_, _ = w.Write([]byte(`{"id":"<mg-1@medusa.de>","message":"Queued"}`))
	}))
	defer srv.Close()

	a := newAdapter(t, config.MapSource{
		config.KeyMailgunAPIKey: "key-1",
		config.KeyMailgunDomain: "mg.medusa.de",
	}, srv)
	res := a.Send(context.Background(), "a@b.de", "s@m.de", TemplateContactNotification, nil, domain.LanguageDE)

	assert.True(t, res.Success)
	assert.Equal(t, "<mg-1@medusa.de>", res.ProviderMessageID)
}

func TestAdapter_PostmarkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pm-token", r.Header.Get("X-Postmark-Server-Token"))
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
	}))
	defer srv.Close()

	a := newAdapter(t, config.MapSource{config.KeyPostmarkServerToken: "pm-token"}, srv)
	res := a.Send(context.Background(), "a@b.de", "s@m.de", TemplatePaymentConfirmation, nil, domain.LanguageDE)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "postmark")
	assert.Contains(t, res.Error, "Invalid email request")
	assert.True(t, errors.Is(res.Err(), domain.ErrProviderFailure))
}

func TestAdapter_NoProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	a := newAdapter(t, config.MapSource{config.KeyResendAPIKey: "your_key_here"}, srv)
	assert.False(t, a.Configured())

	res := a.Send(context.Background(), "a@b.de", "s@m.de", TemplateBookingConfirmation, nil, domain.LanguageDE)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "email")
}

func TestAdapter_MissingTemplateLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	a := newAdapter(t, config.MapSource{config.KeyResendAPIKey: "re_key"}, srv)
	res := a.Send(context.Background(), "studio@m.de", "s@m.de", TemplateBookingNotification, nil, domain.LanguageEN)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "email template not found")
}
