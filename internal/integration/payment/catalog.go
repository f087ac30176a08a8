package payment

import (
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/registry"
)

// catalog статический каталог способов оплаты студии
var catalog = []domain.PaymentMethod{
	{
		ID:             "card",
		Name:           "Kreditkarte",
		Category:       domain.CategoryCard,
		Provider:       domain.ProviderStripe,
		Fees:           domain.PaymentFees{Percentage: 1.4, Fixed: 25},
		ProcessingTime: "Sofort",
		Popular:        true,
	},
	{
		ID:             "sepa",
		Name:           "SEPA-Lastschrift",
		Category:       domain.CategoryBankTransfer,
		Provider:       domain.ProviderStripe,
		Fees:           domain.PaymentFees{Percentage: 0.8, Fixed: 0},
		ProcessingTime: "3-5 Werktage",
	},
	{
		ID:             "paypal",
		Name:           "PayPal",
		Category:       domain.CategoryDigitalWallet,
		Provider:       domain.ProviderPayPal,
		Fees:           domain.PaymentFees{Percentage: 2.49, Fixed: 35},
		ProcessingTime: "Sofort",
		Popular:        true,
	},
	{
		ID:             "apple_pay",
		Name:           "Apple Pay",
		Category:       domain.CategoryDigitalWallet,
		Provider:       domain.ProviderAdyen,
		Fees:           domain.PaymentFees{Percentage: 1.6, Fixed: 11},
		ProcessingTime: "Sofort",
	},
	{
		ID:             "klarna",
		Name:           "Klarna Ratenkauf",
		Category:       domain.CategoryBuyNowPayLater,
		Provider:       domain.ProviderKlarna,
		Fees:           domain.PaymentFees{Percentage: 2.99, Fixed: 35},
		ProcessingTime: "Sofort",
	},
	{
		ID:             "sofort",
		Name:           "Sofortüberweisung",
		Category:       domain.CategoryBankTransfer,
		Provider:       domain.ProviderSofort,
		Fees:           domain.PaymentFees{Percentage: 1.4, Fixed: 25},
		ProcessingTime: "Sofort",
	},
}

var providerCapability = map[domain.PaymentProvider]registry.Capability{
	domain.ProviderStripe: registry.PaymentStripe,
	domain.ProviderPayPal: registry.PaymentPayPal,
	domain.ProviderKlarna: registry.PaymentKlarna,
	domain.ProviderSofort: registry.PaymentSofort,
	domain.ProviderAdyen:  registry.PaymentAdyen,
}

// Lookup ищет способ оплаты по id
func Lookup(id string) (domain.PaymentMethod, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// Methods копия полного каталога
func Methods() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(catalog))
	copy(out, catalog)
	return out
}

// Available способы оплаты, чей провайдер настроен
func Available(reg *registry.Registry) []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, 0, len(catalog))
	for _, m := range catalog {
		if reg.IsAvailable(providerCapability[m.Provider]) {
			out = append(out, m)
		}
	}
	return out
}

// Fee комиссия в центах для суммы amount
func Fee(m domain.PaymentMethod, amount int64) int64 {
	return int64(float64(amount)*m.Fees.Percentage/100+0.5) + m.Fees.Fixed
}
