package email

import (
	"fmt"
	"regexp"

	"github.com/medusa-studio/booking-api/internal/domain"
)

// TemplateName имя шаблона письма
type TemplateName string

const (
	TemplateBookingConfirmation TemplateName = "booking_confirmation"
	TemplateBookingNotification TemplateName = "booking_notification"
	TemplateContactConfirmation TemplateName = "contact_confirmation"
	TemplateContactNotification TemplateName = "contact_notification"
	TemplatePaymentConfirmation TemplateName = "payment_confirmation"
)

// Template тема и тело письма с плейсхолдерами {{key}}
type Template struct {
	Subject string
	HTML    string
}

// Rendered письмо после подстановки данных
type Rendered struct {
	Subject string
	HTML    string
}

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Bind подставляет значения из data. Плейсхолдеры без значения остаются как есть.
func Bind(text string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return v
		}
		return m
	})
}

// Render находит шаблон для пары (имя, язык) и связывает его с данными.
// Отсутствующая пара это ошибка конфигурации, подмены языка нет.
func Render(name TemplateName, lang domain.Language, data map[string]string) (Rendered, error) {
	byLang, ok := templates[name]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
	}
	tpl, ok := byLang[lang]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s/%s", domain.ErrTemplateNotFound, name, lang)
	}
	return Rendered{Subject: Bind(tpl.Subject, data), HTML: Bind(tpl.HTML, data)}, nil
}

// templates письма студии; уведомления для студии существуют только на немецком
var templates = map[TemplateName]map[domain.Language]Template{
	TemplateBookingConfirmation: {
		domain.LanguageDE: {
			Subject: "Ihre Terminanfrage bei {{studioName}}",
			HTML: `<h2>Hallo {{firstName}},</h2>
<p>vielen Dank für Ihre Terminanfrage bei {{studioName}}.</p>
<ul>
<li>Buchungsnummer: {{bookingId}}</li>
<li>Service: {{service}}</li>
<li>Artist: {{artist}}</li>
<li>Wunschtermin: {{date}} {{time}}</li>
</ul>
<p>Wir melden uns innerhalb von 24 Stunden bei Ihnen.</p>
<p>Ihr Team von {{studioName}}</p>`,
		},
		domain.LanguageEN: {
			Subject: "Your booking request at {{studioName}}",
			HTML: `<h2>Hi {{firstName}},</h2>
<p>thank you for your booking request at {{studioName}}.</p>
<ul>
<li>Booking number: {{bookingId}}</li>
<li>Service: {{service}}</li>
<li>Artist: {{artist}}</li>
<li>Preferred date: {{date}} {{time}}</li>
</ul>
<p>We will get back to you within 24 hours.</p>
<p>Your {{studioName}} team</p>`,
		},
	},
	TemplateBookingNotification: {
		domain.LanguageDE: {
			Subject: "Neue Terminanfrage {{bookingId}} von {{fullName}}",
			HTML: `<h2>Neue Terminanfrage</h2>
<ul>
<li>Buchungsnummer: {{bookingId}}</li>
<li>Name: {{fullName}}</li>
<li>E-Mail: {{email}}</li>
<li>Telefon: {{phone}}</li>
<li>Service: {{service}}</li>
<li>Artist: {{artist}}</li>
<li>Wunschtermin: {{date}} {{time}}</li>
<li>Sprache: {{language}}</li>
<li>CRM Kontakt: {{contactId}}</li>
</ul>
<p>{{note}}</p>`,
		},
	},
	TemplateContactConfirmation: {
		domain.LanguageDE: {
			Subject: "Wir haben Ihre Nachricht erhalten",
			HTML: `<h2>Hallo {{name}},</h2>
<p>vielen Dank für Ihre Nachricht zum Thema "{{subject}}". Wir melden uns so schnell wie möglich.</p>
<p>Ihr Team von {{studioName}}</p>`,
		},
		domain.LanguageEN: {
			Subject: "We received your message",
			HTML: `<h2>Hi {{name}},</h2>
<p>thank you for your message about "{{subject}}". We will get back to you as soon as possible.</p>
<p>Your {{studioName}} team</p>`,
		},
	},
	TemplateContactNotification: {
		domain.LanguageDE: {
			Subject: "Kontaktanfrage: {{subject}}",
			HTML: `<h2>Neue Kontaktanfrage</h2>
<ul>
<li>Name: {{name}}</li>
<li>E-Mail: {{email}}</li>
<li>Telefon: {{phone}}</li>
<li>Sprache: {{language}}</li>
</ul>
<p>{{message}}</p>`,
		},
	},
	TemplatePaymentConfirmation: {
		domain.LanguageDE: {
			Subject: "Zahlungsbestätigung für {{bookingId}}",
			HTML: `<h2>Hallo {{name}},</h2>
<p>wir haben Ihre Zahlung über {{amount}} € per {{method}} erhalten.</p>
<ul>
<li>Buchungsnummer: {{bookingId}}</li>
<li>Zahlungsreferenz: {{paymentId}}</li>
<li>Status: {{status}}</li>
</ul>
<p>Ihr Team von {{studioName}}</p>`,
		},
		domain.LanguageEN: {
			Subject: "Payment confirmation for {{bookingId}}",
			HTML: `<h2>Hi {{name}},</h2>
<p>we received your payment of €{{amount}} via {{method}}.</p>
<ul>
<li>Booking number: {{bookingId}}</li>
<li>Payment reference: {{paymentId}}</li>
<li>Status: {{status}}</li>
</ul>
<p>Your {{studioName}} team</p>`,
		},
	},
}
