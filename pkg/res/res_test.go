package res

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	var verrs domain.ValidationErrors
	verrs.Add("email", "must be a valid email address")

	status, env := Synthesize(verrs, domain.LanguageEN)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	assert.Equal(t, "Please fill in all required fields correctly.", env.Message)
	assert.Equal(t, gin.H{"fields": []string{"email"}}, env.Data)

	status, env = Synthesize(fmt.Errorf("lookup: %w", domain.ErrInvalidPaymentMethod), domain.LanguageDE)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", env.Error)

	status, env = Synthesize(errors.New("sendgrid: 401 unauthorized api key abc"), domain.LanguageDE)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "SERVER_ERROR", env.Error)
	assert.NotContains(t, env.Message, "abc")
}

func TestMessage_FallsBackToGerman(t *testing.T) {
	assert.Equal(t, Message(MsgContactSuccess, domain.LanguageDE), Message(MsgContactSuccess, domain.Language("FR")))
	assert.NotEqual(t, Message(MsgBookingSuccess, domain.LanguageDE), Message(MsgBookingSuccess, domain.LanguageEN))
}
