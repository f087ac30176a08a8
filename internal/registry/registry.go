// Package registry отвечает на вопрос "настроена ли интеграция и можно ли ее использовать".
// Доступность вычисляется только по наличию ключей конфигурации, без сетевых проверок.
package registry

import (
	"strings"

	"github.com/medusa-studio/booking-api/config"
)

// Capability конкретная интеграция (провайдер email, платежей или CRM)
type Capability int

const (
	EmailResend Capability = iota
	EmailSendGrid
	EmailMailgun
	EmailPostmark
	PaymentStripe
	PaymentPayPal
	PaymentKlarna
	PaymentSofort
	PaymentAdyen
	CRMZoho
)

var names = [...]string{
	EmailResend:   "email:resend",
	EmailSendGrid: "email:sendgrid",
	EmailMailgun:  "email:mailgun",
	EmailPostmark: "email:postmark",
	PaymentStripe: "payment:stripe",
	PaymentPayPal: "payment:paypal",
	PaymentKlarna: "payment:klarna",
	PaymentSofort: "payment:sofort",
	PaymentAdyen:  "payment:adyen",
	CRMZoho:       "crm:zoho",
}

func (c Capability) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}
	return names[c]
}

// RequiredKeys ключи конфигурации, необходимые каждой интеграции
var RequiredKeys = map[Capability][]string{
	EmailResend:   {config.KeyResendAPIKey},
	EmailSendGrid: {config.KeySendGridAPIKey},
	EmailMailgun:  {config.KeyMailgunAPIKey, config.KeyMailgunDomain},
	EmailPostmark: {config.KeyPostmarkServerToken},
	PaymentStripe: {config.KeyStripeSecretKey},
	PaymentPayPal: {config.KeyPayPalClientID, config.KeyPayPalClientSecret},
	PaymentKlarna: {config.KeyKlarnaUsername, config.KeyKlarnaPassword},
	PaymentSofort: {config.KeySofortConfigKey},
	PaymentAdyen:  {config.KeyAdyenAPIKey, config.KeyAdyenMerchantAccount},
	CRMZoho:       {config.KeyZohoClientID, config.KeyZohoClientSecret, config.KeyZohoRefreshToken},
}

// EmailPreference порядок выбора email-провайдера: первый доступный побеждает
var EmailPreference = []Capability{EmailResend, EmailSendGrid, EmailMailgun, EmailPostmark}

// PaymentCapabilities все платежные интеграции
var PaymentCapabilities = []Capability{PaymentStripe, PaymentPayPal, PaymentKlarna, PaymentSofort, PaymentAdyen}

// placeholders значения-заглушки из примеров .env, которые считаются отсутствующими
var placeholders = map[string]struct{}{
	"your_key_here":     {},
	"your_api_key_here": {},
	"your-api-key":      {},
	"changeme":          {},
	"xxx":               {},
}

// IsPlaceholder сообщает, является ли значение заглушкой
func IsPlaceholder(v string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Registry проверяет доступность интеграций. Безопасен для конкурентного чтения.
type Registry struct {
	src config.Source
}

// New создает реестр поверх источника конфигурации
func New(src config.Source) *Registry {
	return &Registry{src: src}
}

// IsAvailable true, если все обязательные ключи заданы и не являются заглушками
func (r *Registry) IsAvailable(c Capability) bool {
	keys, ok := RequiredKeys[c]
	if !ok || len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		v, ok := r.src.Lookup(key)
		if !ok || strings.TrimSpace(v) == "" || IsPlaceholder(v) {
			return false
		}
	}
	return true
}

// FirstAvailable возвращает первую доступную интеграцию из списка предпочтений
func (r *Registry) FirstAvailable(preference []Capability) (Capability, bool) {
	for _, c := range preference {
		if r.IsAvailable(c) {
			return c, true
		}
	}
	return 0, false
}

// AnyAvailable true, если доступна хотя бы одна интеграция из списка
func (r *Registry) AnyAvailable(caps []Capability) bool {
	_, ok := r.FirstAvailable(caps)
	return ok
}

// Value значение ключа конфигурации; пусто для заглушек
func (r *Registry) Value(key string) string {
	v, ok := r.src.Lookup(key)
	if !ok || IsPlaceholder(v) {
		return ""
	}
	return strings.TrimSpace(v)
}
