package domain

import "strings"

// PaymentStatus общий статус платежа для всех провайдеров
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentCategory категория способа оплаты
type PaymentCategory string

const (
	CategoryCard           PaymentCategory = "card"
	CategoryBankTransfer   PaymentCategory = "bank_transfer"
	CategoryDigitalWallet  PaymentCategory = "digital_wallet"
	CategoryBuyNowPayLater PaymentCategory = "buy_now_pay_later"
)

// PaymentProvider платежный провайдер, которому принадлежит способ оплаты
type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
	ProviderPayPal PaymentProvider = "paypal"
	ProviderKlarna PaymentProvider = "klarna"
	ProviderSofort PaymentProvider = "sofort"
	ProviderAdyen  PaymentProvider = "adyen"
)

// PaymentFees комиссия: процент плюс фиксированная часть в центах
type PaymentFees struct {
	Percentage float64 `json:"percentage"`
	Fixed      int64   `json:"fixed"`
}

// PaymentMethod запись статического каталога способов оплаты
type PaymentMethod struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       PaymentCategory `json:"category"`
	Provider       PaymentProvider `json:"provider"`
	Fees           PaymentFees     `json:"fees"`
	ProcessingTime string          `json:"processingTime"`
	Popular        bool            `json:"popular"`
}

// PaymentRequest запрос на оплату. Amount в центах, валюта EUR.
type PaymentRequest struct {
	Amount          int64          `json:"amount" validate:"required,gt=0"`
	PaymentMethodID string         `json:"paymentMethodId" validate:"required"`
	CustomerEmail   string         `json:"customerEmail" validate:"required"`
	CustomerName    string         `json:"customerName,omitempty"`
	BookingID       string         `json:"bookingId" validate:"required"`
	CRMBookingID    string         `json:"crmBookingId,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Language        string         `json:"language,omitempty"`
}

// Normalize обрезает пробелы в строковых полях
func (r *PaymentRequest) Normalize() {
	for _, f := range []*string{&r.PaymentMethodID, &r.CustomerEmail, &r.CustomerName, &r.BookingID, &r.CRMBookingID, &r.Language} {
		*f = strings.TrimSpace(*f)
	}
}

// Lang язык подтверждения оплаты
func (r PaymentRequest) Lang() Language {
	return ParseLanguage(r.Language)
}

// Currency валюта всех платежей студии
const Currency = "EUR"

// PaymentOutcome результат обработки платежа провайдером.
// Реализации: PaymentCompleted, PaymentPending, PaymentFailed.
type PaymentOutcome interface {
	Status() PaymentStatus
	isPaymentOutcome()
}

// PaymentCompleted провайдер сразу подтвердил платеж
type PaymentCompleted struct {
	PaymentID string
}

// PaymentPending платеж ожидает действия клиента (редирект) или асинхронного подтверждения
type PaymentPending struct {
	PaymentID    string
	RedirectURL  string
	ClientSecret string
}

// PaymentFailed платеж отклонен или отменен
type PaymentFailed struct {
	PaymentID string
	Cancelled bool
	Reason    string
}

func (PaymentCompleted) Status() PaymentStatus { return PaymentStatusCompleted }
func (PaymentPending) Status() PaymentStatus   { return PaymentStatusPending }

func (f PaymentFailed) Status() PaymentStatus {
	if f.Cancelled {
		return PaymentStatusCancelled
	}
	return PaymentStatusFailed
}

func (PaymentCompleted) isPaymentOutcome() {}
func (PaymentPending) isPaymentOutcome()   {}
func (PaymentFailed) isPaymentOutcome()    {}

// PaymentIDOf возвращает идентификатор платежа у провайдера, если он известен
func PaymentIDOf(o PaymentOutcome) string {
	switch v := o.(type) {
	case PaymentCompleted:
		return v.PaymentID
	case PaymentPending:
		return v.PaymentID
	case PaymentFailed:
		return v.PaymentID
	default:
		return ""
	}
}
