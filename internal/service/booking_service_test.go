package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testStudio = config.StudioConfig{
	Name:      "Medusa Tattoo",
	Email:     "studio@medusa.test",
	EmailFrom: "Medusa <noreply@medusa.test>",
}

func fixedIDs() *IDGenerator {
	return &IDGenerator{
		now:  func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) },
		intn: func(int) int { return 234 },
	}
}

func validBooking() domain.BookingRequest {
	return domain.BookingRequest{
		FirstName:    "Anna",
		LastName:     "Muster",
		Email:        "Anna@Example.com",
		Phone:        "+49 170 000000",
		ArtistID:     "artist-1",
		ServiceID:    "fineline",
		SelectedDate: "2026-04-02",
		Message:      "Kleine Rose",
	}
}

type bookingFixture struct {
	sender *mockSender
	crm    *mockCRM
	pub    *mockPublisher
	svc    BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{sender: &mockSender{}, crm: &mockCRM{}, pub: &mockPublisher{}}
	f.svc = NewBookingService(Deps{
		Email:  f.sender,
		CRM:    f.crm,
		Events: f.pub,
		Studio: testStudio,
		Log:    logger.NewNop(),
	}, fixedIDs())
	t.Cleanup(func() {
		f.sender.AssertExpectations(t)
		f.crm.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})
	return f
}

func TestBookingService_Submit_Success(t *testing.T) {
	f := newBookingFixture(t)

	f.crm.On("Configured").Return(true)
	f.crm.On("UpsertContact", mock.Anything, mock.MatchedBy(func(c crm.Contact) bool {
		return c.Email == "anna@example.com"
	})).Return(domain.Succeeded("contact-7", "contact-7")).Once()
	f.crm.On("CreateBooking", mock.Anything, mock.MatchedBy(func(d crm.Deal) bool {
		return d.BookingID == "MEDUSA-20260314-1234" && d.ContactID == "contact-7"
	})).Return(domain.Succeeded("deal-9", "deal-9")).Once()

	f.sender.On("Send", mock.Anything, "Anna@Example.com", testStudio.EmailFrom, email.TemplateBookingConfirmation,
		mock.MatchedBy(func(d map[string]string) bool { return d["bookingId"] == "MEDUSA-20260314-1234" }),
		domain.LanguageDE).Return(domain.Succeeded("", "m-1")).Once()
	f.sender.On("Send", mock.Anything, testStudio.Email, testStudio.EmailFrom, email.TemplateBookingNotification,
		mock.Anything, domain.LanguageDE).Return(domain.Succeeded("", "m-2")).Once()
	f.pub.On("Publish", mock.Anything, eventOfType("booking.submitted")).Return(nil).Once()

	res, err := f.svc.Submit(context.Background(), validBooking())

	require.NoError(t, err)
	assert.Equal(t, "MEDUSA-20260314-1234", res.BookingID)
	assert.Equal(t, "contact-7", res.ContactID)
	assert.Equal(t, "deal-9", res.DealID)
	assert.Equal(t, EstimatedResponse, res.EstimatedResponse)
}

func TestBookingService_Submit_EnglishCustomerGermanStudio(t *testing.T) {
	f := newBookingFixture(t)
	req := validBooking()
	req.Language = "EN"

	f.crm.On("Configured").Return(false)
	f.sender.On("Send", mock.Anything, req.Email, mock.Anything, email.TemplateBookingConfirmation, mock.Anything, domain.LanguageEN).
		Return(domain.Succeeded("", "m-1")).Once()
	f.sender.On("Send", mock.Anything, testStudio.Email, mock.Anything, email.TemplateBookingNotification, mock.Anything, domain.LanguageDE).
		Return(domain.Succeeded("", "m-2")).Once()
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, res.ContactID)
	f.crm.AssertNotCalled(t, "UpsertContact", mock.Anything, mock.Anything)
}

func TestBookingService_Submit_InvalidRequestMakesNoCalls(t *testing.T) {
	f := newBookingFixture(t)
	req := validBooking()
	req.Email = "not-an-email"
	req.Phone = "   "

	_, err := f.svc.Submit(context.Background(), req)

	require.Error(t, err)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.ElementsMatch(t, []string{"email", "phone"}, verrs.Fields())
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.crm.AssertNotCalled(t, "Configured")
}

func TestBookingService_Submit_CRMFailureIsNotFatal(t *testing.T) {
	f := newBookingFixture(t)

	f.crm.On("Configured").Return(true)
	f.crm.On("UpsertContact", mock.Anything, mock.Anything).Return(domain.FailedResult[string]("status 500")).Once()
	f.crm.On("CreateBooking", mock.Anything, mock.MatchedBy(func(d crm.Deal) bool { return d.ContactID == "" })).
		Return(domain.FailedResult[string]("status 500")).Once()
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Succeeded("", "m")).Twice()
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	res, err := f.svc.Submit(context.Background(), validBooking())

	require.NoError(t, err)
	assert.Equal(t, "", res.ContactID)
	assert.Equal(t, "", res.DealID)
}

func TestBookingService_Submit_CRMPanicIsContained(t *testing.T) {
	f := newBookingFixture(t)

	f.crm.On("Configured").Return(true)
	f.crm.On("UpsertContact", mock.Anything, mock.Anything).Panic("nil map").Once()
	f.crm.On("CreateBooking", mock.Anything, mock.Anything).Return(domain.Succeeded("deal-1", "deal-1")).Once()
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Succeeded("", "m")).Twice()
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.svc.Submit(context.Background(), validBooking())

	require.NoError(t, err)
	assert.Equal(t, "deal-1", res.DealID)
}

func TestBookingService_Submit_CustomerEmailFailureIsFatal(t *testing.T) {
	f := newBookingFixture(t)

	f.crm.On("Configured").Return(false)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, email.TemplateBookingConfirmation, mock.Anything, mock.Anything).
		Return(domain.FailedResult[string]("sendgrid: status 401")).Once()

	_, err := f.svc.Submit(context.Background(), validBooking())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	f.sender.AssertNumberOfCalls(t, "Send", 1)
	f.pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBookingService_Submit_StudioEmailFailureIsFatal(t *testing.T) {
	f := newBookingFixture(t)

	f.crm.On("Configured").Return(false)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, email.TemplateBookingConfirmation, mock.Anything, mock.Anything).
		Return(domain.Succeeded("", "m-1")).Once()
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, email.TemplateBookingNotification, mock.Anything, mock.Anything).
		Return(domain.FailedResult[string]("no email provider")).Once()

	_, err := f.svc.Submit(context.Background(), validBooking())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "studio notification")
}

func TestIDGenerator_Format(t *testing.T) {
	assert.Equal(t, "MEDUSA-20260314-1234", fixedIDs().Next())

	pattern := regexp.MustCompile(`^MEDUSA-\d{8}-[1-9]\d{3}$`)
	g := NewIDGenerator()
	for i := 0; i < 200; i++ {
		assert.Regexp(t, pattern, g.Next())
	}

	low := &IDGenerator{now: time.Now, intn: func(int) int { return 0 }}
	high := &IDGenerator{now: time.Now, intn: func(n int) int { return n - 1 }}
	assert.Regexp(t, `-1000$`, low.Next())
	assert.Regexp(t, `-9999$`, high.Next())
}
