package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageEN, ParseLanguage("EN"))
	assert.Equal(t, LanguageEN, ParseLanguage(" en "))
	assert.Equal(t, LanguageDE, ParseLanguage(""))
	assert.Equal(t, LanguageDE, ParseLanguage("FR"))
}

func TestBookingRequest_Helpers(t *testing.T) {
	req := BookingRequest{
		FirstName: "  Anna ",
		LastName:  "Muster",
		ServiceID: "s1",
		ArtistID:  "a1",
		Message:   "Rose am Unterarm",
	}
	req.Normalize()

	assert.Equal(t, "Anna", req.FirstName)
	assert.Equal(t, "Anna Muster", req.FullName())
	assert.Equal(t, "Rose am Unterarm", req.Note())
	assert.Equal(t, "s1", req.ServiceLabel())
	assert.Equal(t, "a1", req.ArtistLabel())

	req.Details = "Details first"
	req.ServiceName = "Fineline Tattoo"
	assert.Equal(t, "Details first", req.Note())
	assert.Equal(t, "Fineline Tattoo", req.ServiceLabel())
}

func TestPaymentOutcomeStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusCompleted, PaymentCompleted{PaymentID: "pi_1"}.Status())
	assert.Equal(t, PaymentStatusPending, PaymentPending{RedirectURL: "https://pay"}.Status())
	assert.Equal(t, PaymentStatusFailed, PaymentFailed{Reason: "card_declined"}.Status())
	assert.Equal(t, PaymentStatusCancelled, PaymentFailed{Cancelled: true}.Status())

	assert.Equal(t, "pi_1", PaymentIDOf(PaymentCompleted{PaymentID: "pi_1"}))
	assert.Equal(t, "", PaymentIDOf(nil))
}

func TestIntegrationResult_Err(t *testing.T) {
	ok := Succeeded("contact-1", "msg-1")
	assert.NoError(t, ok.Err())
	assert.Equal(t, "contact-1", ok.Data)

	failed := FailedResult[string]("status %d: %s", 502, "bad gateway")
	assert.False(t, failed.Success)
	assert.Equal(t, "status 502: bad gateway", failed.Error)
	assert.True(t, errors.Is(failed.Err(), ErrProviderFailure))
}

func TestValidationErrors(t *testing.T) {
	var verrs ValidationErrors
	assert.False(t, verrs.HasErrors())

	verrs.Add("email", "invalid")
	verrs.Add("phone", "required")

	assert.True(t, verrs.HasErrors())
	assert.True(t, errors.Is(verrs, ErrValidation))
	assert.Equal(t, []string{"email", "phone"}, verrs.Fields())
	assert.Equal(t, "required", verrs.GetByField("phone"))
	assert.Equal(t, "validation failed: email, phone", verrs.Error())
}

func TestExternalServiceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewExternalServiceError("sendgrid", "http_502", "bad gateway", 502, cause)

	assert.True(t, errors.Is(err, ErrProviderFailure))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "sendgrid service error [http_502]")
	assert.True(t, errors.Is(NotConfiguredError("crm"), ErrNotConfigured))
}
