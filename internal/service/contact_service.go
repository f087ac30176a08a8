package service

import (
	"context"
	"fmt"

	"github.com/medusa-studio/booking-api/internal/domain"
	"github.com/medusa-studio/booking-api/internal/events"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/medusa-studio/booking-api/pkg/req"
)

// ContactService интерфейс сервиса контактной формы
type ContactService interface {
	Submit(ctx context.Context, r domain.ContactRequest) error
}

type contactService struct {
	deps Deps
	log  *logger.Logger
}

// NewContactService создает оркестратор контактной формы
func NewContactService(deps Deps) ContactService {
	deps.defaults()
	return &contactService{deps: deps, log: deps.Log.Named("contact")}
}

// Submit уведомляет студию и отправляет клиенту автоответ. Обе отправки фатальны.
func (s *contactService) Submit(ctx context.Context, r domain.ContactRequest) error {
	r.Normalize()
	if err := req.IsValid(r); err != nil {
		s.deps.Metrics.IncSubmission("contact", "invalid")
		return err
	}

	data := contactTemplateData(r, s.deps.Studio.Name)

	res := s.deps.Email.Send(ctx, s.deps.Studio.Email, s.deps.Studio.EmailFrom, email.TemplateContactNotification, data, domain.LanguageDE)
	if !res.Success {
		s.deps.Metrics.IncSubmission("contact", metrics.OutcomeFailure)
		return fmt.Errorf("contact: studio notification: %w", res.Err())
	}

	res = s.deps.Email.Send(ctx, r.Email, s.deps.Studio.EmailFrom, email.TemplateContactConfirmation, data, r.Lang())
	if !res.Success {
		s.deps.Metrics.IncSubmission("contact", metrics.OutcomeFailure)
		return fmt.Errorf("contact: customer confirmation: %w", res.Err())
	}

	bestEffortErr(s.log, "events.contact_submitted", func() error {
		return s.deps.Events.Publish(ctx, events.New(events.TypeContactSubmitted, r.Email, events.ContactSubmitted{
			Email:    r.Email,
			Subject:  r.Subject,
			Language: string(r.Lang()),
		}))
	})

	s.deps.Metrics.IncSubmission("contact", metrics.OutcomeSuccess)
	s.log.Infow("Contact request processed", "subject", r.Subject)
	return nil
}
