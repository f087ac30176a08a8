package service

import (
	"context"
	"fmt"

	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/events"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/req"
)

// EstimatedResponse срок ответа студии, который видит клиент
const EstimatedResponse = "24 hours"

// BookingResult итог обработки заявки на бронирование
type BookingResult struct {
	BookingID         string
	ContactID         string
	DealID            string
	EstimatedResponse string
}

// BookingService интерфейс сервиса заявок на бронирование
type BookingService interface {
	Submit(ctx context.Context, r domain.BookingRequest) (BookingResult, error)
}

// Deps общие зависимости оркестраторов
type Deps struct {
	Email   email.Sender
	CRM     crm.CRM
	Events  events.Publisher
	Metrics metrics.IntegrationMetrics
	Studio  config.StudioConfig
	Log     *logger.Logger
}

func (d *Deps) defaults() {
	if d.Events == nil {
		d.Events = events.NewNopPublisher()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewNop()
	}
}

type bookingService struct {
	deps Deps
	ids  *IDGenerator
	log  *logger.Logger
}

// NewBookingService создает оркестратор бронирований
func NewBookingService(deps Deps, ids *IDGenerator) BookingService {
	deps.defaults()
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &bookingService{deps: deps, ids: ids, log: deps.Log.Named("booking")}
}

// Submit проводит заявку по шагам: валидация, CRM (best-effort), письмо клиенту, письмо студии.
// Ошибка любого из писем фатальна для запроса.
func (s *bookingService) Submit(ctx context.Context, r domain.BookingRequest) (BookingResult, error) {
	r.Normalize()
	if err := req.IsValid(r); err != nil {
		s.deps.Metrics.IncSubmission("booking", "invalid")
		return BookingResult{}, err
	}

	bookingID := s.ids.Next()
	lang := r.Lang()

	var contactID, dealID string
	if s.deps.CRM.Configured() {
		contactID, _ = bestEffort(s.log, "crm.upsert_contact", func() domain.IntegrationResult[string] {
			return s.deps.CRM.UpsertContact(ctx, crm.ContactFromBooking(r))
		})
		dealID, _ = bestEffort(s.log, "crm.create_booking", func() domain.IntegrationResult[string] {
			return s.deps.CRM.CreateBooking(ctx, crm.DealFromBooking(r, bookingID, contactID))
		})
	} else {
		s.log.Debugw("CRM not configured, skipping sync", "bookingID", bookingID)
	}

	data := bookingTemplateData(r, bookingID, contactID, s.deps.Studio.Name)

	res := s.deps.Email.Send(ctx, r.Email, s.deps.Studio.EmailFrom, email.TemplateBookingConfirmation, data, lang)
	if !res.Success {
		s.deps.Metrics.IncSubmission("booking", metrics.OutcomeFailure)
		return BookingResult{}, fmt.Errorf("booking %s: customer confirmation: %w", bookingID, res.Err())
	}

	res = s.deps.Email.Send(ctx, s.deps.Studio.Email, s.deps.Studio.EmailFrom, email.TemplateBookingNotification, data, domain.LanguageDE)
	if !res.Success {
		s.deps.Metrics.IncSubmission("booking", metrics.OutcomeFailure)
		return BookingResult{}, fmt.Errorf("booking %s: studio notification: %w", bookingID, res.Err())
	}

	bestEffortErr(s.log, "events.booking_submitted", func() error {
		return s.deps.Events.Publish(ctx, events.New(events.TypeBookingSubmitted, bookingID, events.BookingSubmitted{
			BookingID: bookingID,
			ContactID: contactID,
			DealID:    dealID,
			ArtistID:  r.ArtistID,
			ServiceID: r.ServiceID,
			Date:      r.SelectedDate,
			Language:  string(lang),
		}))
	})

	s.deps.Metrics.IncSubmission("booking", metrics.OutcomeSuccess)
	s.log.Infow("Booking request processed", "bookingID", bookingID, "contactID", contactID, "dealID", dealID)

	return BookingResult{
		BookingID:         bookingID,
		ContactID:         contactID,
		DealID:            dealID,
		EstimatedResponse: EstimatedResponse,
	}, nil
}
