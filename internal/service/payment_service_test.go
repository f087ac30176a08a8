package service

import (
	"context"
	"errors"
	"testing"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/internal/integration/payment"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	sender *mockSender
	crm    *mockCRM
	proc   *mockProcessor
	pub    *mockPublisher
	svc    PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{sender: &mockSender{}, crm: &mockCRM{}, proc: &mockProcessor{}, pub: &mockPublisher{}}
	f.svc = NewPaymentService(Deps{
		Email:  f.sender,
		CRM:    f.crm,
		Events: f.pub,
		Studio: testStudio,
		Log:    logger.NewNop(),
	}, f.proc)
	t.Cleanup(func() {
		f.sender.AssertExpectations(t)
		f.crm.AssertExpectations(t)
		f.proc.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})
	return f
}

func validPayment(method string) domain.PaymentRequest {
	return domain.PaymentRequest{
		Amount:          5000,
		PaymentMethodID: method,
		CustomerEmail:   "anna@example.com",
		CustomerName:    "Anna Muster",
		BookingID:       "MEDUSA-20260314-1234",
	}
}

func TestPaymentService_Process_PendingCard(t *testing.T) {
	f := newPaymentFixture(t)
	req := validPayment("card")

	outcome := domain.PaymentPending{PaymentID: "pi_1", ClientSecret: "pi_1_secret"}
	f.proc.On("Process", mock.Anything, mock.MatchedBy(func(m domain.PaymentMethod) bool { return m.ID == "card" }), mock.Anything).
		Return(domain.Succeeded[domain.PaymentOutcome](outcome, "pi_1")).Once()
	f.sender.On("Send", mock.Anything, "anna@example.com", mock.Anything, email.TemplatePaymentConfirmation,
		mock.MatchedBy(func(d map[string]string) bool { return d["amount"] == "50,00" }), domain.LanguageDE).
		Return(domain.Succeeded("", "m-1")).Once()
	f.pub.On("Publish", mock.Anything, eventOfType("payment.processed")).Return(nil).Once()

	res, err := f.svc.Process(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "pi_1", res.PaymentID)
	assert.Equal(t, domain.PaymentStatusPending, res.Status)
	assert.Equal(t, "pi_1_secret", res.ClientSecret)
	assert.Equal(t, domain.ProviderStripe, res.Provider)
	assert.Equal(t, "EUR", res.Currency)
	assert.Empty(t, res.Error)
	f.crm.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Process_CompletedUpdatesCRM(t *testing.T) {
	f := newPaymentFixture(t)
	req := validPayment("paypal")
	req.CRMBookingID = "deal-9"

	f.proc.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Succeeded[domain.PaymentOutcome](domain.PaymentCompleted{PaymentID: "ORDER-1"}, "ORDER-1")).Once()
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FailedResult[string]("email down")).Once()
	f.crm.On("Configured").Return(true)
	f.crm.On("UpdateBookingStatus", mock.Anything, "deal-9", crm.StagePaid, mock.Anything).
		Return(domain.Succeeded("deal-9", "deal-9")).Once()
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.svc.Process(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, res.Success, "confirmation email failure does not fail the payment")
	assert.Equal(t, domain.PaymentStatusCompleted, res.Status)
	assert.Equal(t, domain.ProviderPayPal, res.Provider)
}

func TestPaymentService_Process_Declined(t *testing.T) {
	f := newPaymentFixture(t)

	declined := domain.PaymentFailed{PaymentID: "pi_2", Reason: payment.ReasonDeclined}
	f.proc.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.IntegrationResult[domain.PaymentOutcome]{Data: declined, Error: "card_declined: insufficient funds"}).Once()
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.svc.Process(context.Background(), validPayment("card"))

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.PaymentStatusFailed, res.Status)
	assert.Equal(t, payment.ReasonDeclined, res.Error)
	assert.NotContains(t, res.Error, "insufficient")
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Process_UnknownMethod(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Process(context.Background(), validPayment("bitcoin"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPaymentMethod))
	f.proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Process_Invalid(t *testing.T) {
	f := newPaymentFixture(t)
	req := validPayment("card")
	req.Amount = 0

	_, err := f.svc.Process(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Methods(t *testing.T) {
	f := newPaymentFixture(t)
	methods := []domain.PaymentMethod{{ID: "card"}}
	f.proc.On("Methods").Return(methods).Once()

	assert.Equal(t, methods, f.svc.Methods())
}

func TestBestEffort(t *testing.T) {
	log := logger.NewNop()

	v, ok := bestEffort(log, "ok", func() domain.IntegrationResult[string] { return domain.Succeeded("x", "") })
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = bestEffort(log, "panic", func() domain.IntegrationResult[string] { panic("boom") })
	assert.False(t, ok)
	assert.Empty(t, v)

	assert.NotPanics(t, func() {
		bestEffortErr(log, "panic", func() error { panic("boom") })
	})
}
