package service

import (
	"context"
	"fmt"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/events"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/internal/integration/payment"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/req"
)

// PaymentResult ответ платежного эндпоинта: результат адаптера как есть.
// Error содержит только код причины, текст провайдера остается в логах.
type PaymentResult struct {
	Success       bool                   `json:"success"`
	PaymentID     string                 `json:"paymentId,omitempty"`
	Status        domain.PaymentStatus   `json:"status"`
	RedirectURL   string                 `json:"redirectUrl,omitempty"`
	ClientSecret  string                 `json:"clientSecret,omitempty"`
	Provider      domain.PaymentProvider `json:"provider"`
	PaymentMethod string                 `json:"paymentMethod"`
	Amount        int64                  `json:"amount"`
	Currency      string                 `json:"currency"`
	BookingID     string                 `json:"bookingId"`
	Error         string                 `json:"error,omitempty"`
}

// PaymentService интерфейс платежного сервиса
type PaymentService interface {
	Process(ctx context.Context, r domain.PaymentRequest) (PaymentResult, error)
	Methods() []domain.PaymentMethod
}

type paymentService struct {
	deps     Deps
	payments payment.Processor
	log      *logger.Logger
}

// NewPaymentService создает платежный оркестратор
func NewPaymentService(deps Deps, payments payment.Processor) PaymentService {
	deps.defaults()
	return &paymentService{deps: deps, payments: payments, log: deps.Log.Named("payment")}
}

// Methods способы оплаты с настроенным провайдером
func (s *paymentService) Methods() []domain.PaymentMethod {
	return s.payments.Methods()
}

// Process проводит платеж ровно одним вызовом провайдера. Ошибка возвращается только для
// невалидного запроса и неизвестного способа оплаты; отказ провайдера это PaymentResult со Success=false.
func (s *paymentService) Process(ctx context.Context, r domain.PaymentRequest) (PaymentResult, error) {
	r.Normalize()
	if err := req.IsValid(r); err != nil {
		s.deps.Metrics.IncSubmission("payment", "invalid")
		return PaymentResult{}, err
	}

	method, ok := payment.Lookup(r.PaymentMethodID)
	if !ok {
		s.deps.Metrics.IncSubmission("payment", "invalid")
		return PaymentResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, r.PaymentMethodID)
	}

	res := s.payments.Process(ctx, method, r)
	result := PaymentResult{
		Success:       res.Success,
		Provider:      method.Provider,
		PaymentMethod: method.ID,
		Amount:        r.Amount,
		Currency:      domain.Currency,
		BookingID:     r.BookingID,
	}
	outcome := res.Data
	if outcome == nil {
		outcome = domain.PaymentFailed{Reason: payment.ReasonProviderError}
	}
	result.Status = outcome.Status()
	result.PaymentID = domain.PaymentIDOf(outcome)

	switch o := outcome.(type) {
	case domain.PaymentPending:
		result.RedirectURL = o.RedirectURL
		result.ClientSecret = o.ClientSecret
	case domain.PaymentFailed:
		result.Error = o.Reason
	}

	if res.Success {
		s.notify(ctx, r, method, outcome)
	} else {
		s.log.Warnw("Payment failed", "bookingID", r.BookingID, "method", method.ID, "status", result.Status, "providerError", res.Error)
	}

	bestEffortErr(s.log, "events.payment_processed", func() error {
		return s.deps.Events.Publish(ctx, events.New(events.TypePaymentProcessed, r.BookingID, events.PaymentProcessed{
			BookingID:       r.BookingID,
			PaymentID:       result.PaymentID,
			PaymentMethodID: method.ID,
			Provider:        string(method.Provider),
			Amount:          r.Amount,
			Currency:        domain.Currency,
			Status:          string(result.Status),
		}))
	})

	s.deps.Metrics.IncSubmission("payment", metrics.Outcome(res.Success))
	return result, nil
}

// notify подтверждение клиенту и обновление сделки в CRM; обе операции best-effort
func (s *paymentService) notify(ctx context.Context, r domain.PaymentRequest, method domain.PaymentMethod, outcome domain.PaymentOutcome) {
	data := paymentTemplateData(r, method, outcome, s.deps.Studio.Name)
	bestEffort(s.log, "email.payment_confirmation", func() domain.IntegrationResult[string] {
		return s.deps.Email.Send(ctx, r.CustomerEmail, s.deps.Studio.EmailFrom, email.TemplatePaymentConfirmation, data, r.Lang())
	})

	if r.CRMBookingID == "" || !s.deps.CRM.Configured() {
		return
	}
	note := fmt.Sprintf("Zahlung %s via %s: %s (%s EUR)", domain.PaymentIDOf(outcome), method.Name, outcome.Status(), decimal(r.Amount))
	bestEffort(s.log, "crm.update_booking_status", func() domain.IntegrationResult[string] {
		return s.deps.CRM.UpdateBookingStatus(ctx, r.CRMBookingID, crm.StageForPayment(outcome.Status()), note)
	})
}
