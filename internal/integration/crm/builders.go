package crm

import (
	"strings"
	"time"

	"github.com/medusa-studio/booking-api/internal/domain"
)

// Стадии сделки в CRM
const (
	StageNew            = "New"
	StagePaid           = "Paid"
	StagePaymentPending = "Payment Pending"
	StagePaymentFailed  = "Payment Failed"
)

const leadSource = "Website"

// Contact контакт клиента в терминах CRM
type Contact struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Language    domain.Language
	Description string
}

// Deal сделка (запись о бронировании) в CRM
type Deal struct {
	Name        string
	BookingID   string
	ContactID   string
	Stage       string
	Service     string
	Artist      string
	ClosingDate string
	Description string
}

// ContactFromBooking строит контакт из заявки на бронирование
func ContactFromBooking(req domain.BookingRequest) Contact {
	return Contact{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       strings.ToLower(req.Email),
		Phone:       req.Phone,
		Language:    req.Lang(),
		Description: req.Note(),
	}
}

// DealFromBooking строит сделку из заявки. Дата закрытия сделки равна желаемой дате сеанса.
func DealFromBooking(req domain.BookingRequest, bookingID, contactID string) Deal {
	return Deal{
		Name:        bookingID + " " + req.ServiceLabel() + " - " + req.FullName(),
		BookingID:   bookingID,
		ContactID:   contactID,
		Stage:       StageNew,
		Service:     req.ServiceLabel(),
		Artist:      req.ArtistLabel(),
		ClosingDate: closingDate(req.SelectedDate),
		Description: dealDescription(req),
	}
}

// StageForPayment стадия сделки после обработки платежа
func StageForPayment(status domain.PaymentStatus) string {
	switch status {
	case domain.PaymentStatusCompleted:
		return StagePaid
	case domain.PaymentStatusPending:
		return StagePaymentPending
	default:
		return StagePaymentFailed
	}
}

func closingDate(selected string) string {
	if t, err := time.Parse("2006-01-02", selected); err == nil {
		return t.Format("2006-01-02")
	}
	return time.Now().Format("2006-01-02")
}

func dealDescription(req domain.BookingRequest) string {
	var b strings.Builder
	b.WriteString("Termin: " + req.SelectedDate)
	if req.SelectedTime != "" {
		b.WriteString(" " + req.SelectedTime)
	}
	b.WriteString("\nArtist: " + req.ArtistLabel())
	if note := req.Note(); note != "" {
		b.WriteString("\n\n" + note)
	}
	return b.String()
}
