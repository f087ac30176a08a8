package service

import (
	"fmt"

	"github.com/medusa-studio/booking-api/internal/domain"
)

// данные шаблонов писем; отсутствующие поля просто не попадают в map

func bookingTemplateData(r domain.BookingRequest, bookingID, contactID, studioName string) map[string]string {
	return map[string]string{
		"firstName":  r.FirstName,
		"lastName":   r.LastName,
		"fullName":   r.FullName(),
		"email":      r.Email,
		"phone":      r.Phone,
		"service":    r.ServiceLabel(),
		"artist":     r.ArtistLabel(),
		"date":       r.SelectedDate,
		"time":       r.SelectedTime,
		"note":       r.Note(),
		"language":   string(r.Lang()),
		"bookingId":  bookingID,
		"contactId":  contactID,
		"studioName": studioName,
	}
}

func contactTemplateData(r domain.ContactRequest, studioName string) map[string]string {
	return map[string]string{
		"name":       r.Name,
		"email":      r.Email,
		"phone":      r.Phone,
		"subject":    r.Subject,
		"message":    r.Message,
		"language":   string(r.Lang()),
		"studioName": studioName,
	}
}

func paymentTemplateData(r domain.PaymentRequest, m domain.PaymentMethod, outcome domain.PaymentOutcome, studioName string) map[string]string {
	name := r.CustomerName
	if name == "" {
		name = r.CustomerEmail
	}
	return map[string]string{
		"name":       name,
		"amount":     decimal(r.Amount),
		"method":     m.Name,
		"bookingId":  r.BookingID,
		"paymentId":  domain.PaymentIDOf(outcome),
		"status":     string(outcome.Status()),
		"studioName": studioName,
	}
}

// decimal сумма в евро с запятой: 5000 -> "50,00"
func decimal(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}
