package service

import (
	"context"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/events"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/stretchr/testify/mock"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, from string, tmpl email.TemplateName, data map[string]string, lang domain.Language) domain.IntegrationResult[string] {
	args := m.Called(ctx, to, from, tmpl, data, lang)
	return args.Get(0).(domain.IntegrationResult[string])
}

type mockCRM struct{ mock.Mock }

func (m *mockCRM) UpsertContact(ctx context.Context, c crm.Contact) domain.IntegrationResult[string] {
	return m.Called(ctx, c).Get(0).(domain.IntegrationResult[string])
}

func (m *mockCRM) CreateBooking(ctx context.Context, d crm.Deal) domain.IntegrationResult[string] {
	return m.Called(ctx, d).Get(0).(domain.IntegrationResult[string])
}

func (m *mockCRM) UpdateBookingStatus(ctx context.Context, id, stage, note string) domain.IntegrationResult[string] {
	return m.Called(ctx, id, stage, note).Get(0).(domain.IntegrationResult[string])
}

func (m *mockCRM) Configured() bool {
	return m.Called().Bool(0)
}

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) Process(ctx context.Context, method domain.PaymentMethod, req domain.PaymentRequest) domain.IntegrationResult[domain.PaymentOutcome] {
	return m.Called(ctx, method, req).Get(0).(domain.IntegrationResult[domain.PaymentOutcome])
}

func (m *mockProcessor) Methods() []domain.PaymentMethod {
	return m.Called().Get(0).([]domain.PaymentMethod)
}

func (m *mockProcessor) Configured() bool {
	return m.Called().Bool(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// matchers

func eventOfType(t string) any {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == t })
}
