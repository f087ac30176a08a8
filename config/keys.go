package config

// Ключи конфигурации внешних интеграций. Их наличие определяет доступность провайдеров.
const (
	KeyResendAPIKey         = "RESEND_API_KEY"
	KeySendGridAPIKey       = "SENDGRID_API_KEY"
	KeyMailgunAPIKey        = "MAILGUN_API_KEY"
	KeyMailgunDomain        = "MAILGUN_DOMAIN"
	KeyPostmarkServerToken  = "POSTMARK_SERVER_TOKEN"
	KeyStripeSecretKey      = "STRIPE_SECRET_KEY"
	KeyPayPalClientID       = "PAYPAL_CLIENT_ID"
	KeyPayPalClientSecret   = "PAYPAL_CLIENT_SECRET"
	KeyKlarnaUsername       = "KLARNA_USERNAME"
	KeyKlarnaPassword       = "KLARNA_PASSWORD"
	KeySofortConfigKey      = "SOFORT_CONFIG_KEY"
	KeyAdyenAPIKey          = "ADYEN_API_KEY"
	KeyAdyenMerchantAccount = "ADYEN_MERCHANT_ACCOUNT"
	KeyZohoClientID         = "ZOHO_CLIENT_ID"
	KeyZohoClientSecret     = "ZOHO_CLIENT_SECRET"
	KeyZohoRefreshToken     = "ZOHO_REFRESH_TOKEN"
)

// IntegrationKeys все ключи, которые читаются в Config.Integrations.Values
var IntegrationKeys = []string{
	KeyResendAPIKey,
	KeySendGridAPIKey,
	KeyMailgunAPIKey,
	KeyMailgunDomain,
	KeyPostmarkServerToken,
	KeyStripeSecretKey,
	KeyPayPalClientID,
	KeyPayPalClientSecret,
	KeyKlarnaUsername,
	KeyKlarnaPassword,
	KeySofortConfigKey,
	KeyAdyenAPIKey,
	KeyAdyenMerchantAccount,
	KeyZohoClientID,
	KeyZohoClientSecret,
	KeyZohoRefreshToken,
}

// Source источник значений конфигурации только для чтения
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource реализация Source поверх map, снимок на момент загрузки
type MapSource map[string]string

// Lookup возвращает значение ключа и признак его наличия
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get возвращает значение ключа или пустую строку
func (m MapSource) Get(key string) string {
	return m[key]
}
