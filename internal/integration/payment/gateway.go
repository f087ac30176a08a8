package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medusa-studio/booking-api/internal/domain"
)

// Причины отказа, которые уходят клиенту. Текст провайдера только в логах.
const (
	ReasonDeclined      = "payment_declined"
	ReasonCancelled     = "payment_cancelled"
	ReasonProviderError = "provider_error"
	ReasonNotConfigured = "provider_not_configured"
)

// Charge запрос к провайдеру в его терминах
type Charge struct {
	Method    domain.PaymentMethod
	Request   domain.PaymentRequest
	ReturnURL string
	CancelURL string
}

// Gateway один платежный провайдер. Делает один вызов создания платежа без повторов.
type Gateway interface {
	Name() string
	Charge(ctx context.Context, c Charge) (domain.PaymentOutcome, error)
}

// Endpoints базовые адреса API провайдеров
type Endpoints struct {
	Stripe string
	PayPal string
	Klarna string
	Sofort string
	Adyen  string
}

// DefaultEndpoints боевые адреса. Для Adyen live-адрес зависит от префикса аккаунта,
// поэтому он задается через WithEndpoints.
var DefaultEndpoints = Endpoints{
	Stripe: "https://api.stripe.com",
	PayPal: "https://api-m.paypal.com",
	Klarna: "https://api.klarna.com",
	Sofort: "https://api.sofort.com",
	Adyen:  "https://checkout-test.adyen.com",
}

// decimalAmount центы в строку с двумя знаками: 5000 -> "50.00"
func decimalAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// withBooking добавляет bookingId к адресу возврата
func withBooking(base, bookingID string, extra ...string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("bookingId", bookingID)
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func description(c Charge) string {
	return fmt.Sprintf("Booking %s (%s)", c.Request.BookingID, c.Method.Name)
}

// localeTag локаль для страниц провайдера
func localeTag(lang domain.Language) string {
	if lang == domain.LanguageEN {
		return "en-DE"
	}
	return "de-DE"
}
