package res

import "github.com/medusa-studio/booking-api/internal/domain"

// MessageKey ключ локализованного сообщения ответа
type MessageKey string

const (
	MsgValidation           MessageKey = "validation"
	MsgInvalidPaymentMethod MessageKey = "invalid_payment_method"
	MsgServerError          MessageKey = "server_error"
	MsgBookingSuccess       MessageKey = "booking_success"
	MsgContactSuccess       MessageKey = "contact_success"
	MsgRateLimited          MessageKey = "rate_limited"
)

var messages = map[MessageKey]map[domain.Language]string{
	MsgValidation: {
		domain.LanguageDE: "Bitte füllen Sie alle Pflichtfelder korrekt aus.",
		domain.LanguageEN: "Please fill in all required fields correctly.",
	},
	MsgInvalidPaymentMethod: {
		domain.LanguageDE: "Die gewählte Zahlungsmethode ist nicht verfügbar.",
		domain.LanguageEN: "The selected payment method is not available.",
	},
	MsgServerError: {
		domain.LanguageDE: "Es ist ein Fehler aufgetreten. Bitte versuchen Sie es später erneut.",
		domain.LanguageEN: "Something went wrong. Please try again later.",
	},
	MsgBookingSuccess: {
		domain.LanguageDE: "Vielen Dank für Ihre Buchungsanfrage! Wir melden uns innerhalb von 24 Stunden bei Ihnen.",
		domain.LanguageEN: "Thank you for your booking request! We will get back to you within 24 hours.",
	},
	MsgContactSuccess: {
		domain.LanguageDE: "Vielen Dank für Ihre Nachricht! Wir melden uns so schnell wie möglich.",
		domain.LanguageEN: "Thank you for your message! We will get back to you as soon as possible.",
	},
	MsgRateLimited: {
		domain.LanguageDE: "Zu viele Anfragen. Bitte versuchen Sie es in einer Minute erneut.",
		domain.LanguageEN: "Too many requests. Please try again in a minute.",
	},
}

// Message возвращает текст на нужном языке, по умолчанию немецкий
func Message(key MessageKey, lang domain.Language) string {
	texts := messages[key]
	if msg, ok := texts[lang]; ok {
		return msg
	}
	return texts[domain.LanguageDE]
}
