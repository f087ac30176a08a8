package domain

import "strings"

// Language язык писем и сообщений ответа
type Language string

const (
	LanguageDE Language = "DE"
	LanguageEN Language = "EN"
)

// ParseLanguage возвращает EN только для явного "EN", иначе немецкий по умолчанию
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LanguageEN)) {
		return LanguageEN
	}
	return LanguageDE
}

// BookingRequest заявка на запись к мастеру
type BookingRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,simpleemail"`
	Phone        string `json:"phone" validate:"required"`
	ArtistID     string `json:"artistId" validate:"required"`
	ServiceID    string `json:"serviceId" validate:"required"`
	SelectedDate string `json:"selectedDate" validate:"required"`
	SelectedTime string `json:"selectedTime,omitempty"`
	ArtistName   string `json:"artistName,omitempty"`
	ServiceName  string `json:"serviceName,omitempty"`
	Details      string `json:"details,omitempty"`
	Message      string `json:"message,omitempty"`
	Language     string `json:"language,omitempty"`
}

// Normalize обрезает пробелы в строковых полях; email проверяется как есть
func (r *BookingRequest) Normalize() {
	for _, f := range []*string{
		&r.FirstName, &r.LastName, &r.Phone, &r.ArtistID, &r.ServiceID,
		&r.SelectedDate, &r.SelectedTime, &r.ArtistName, &r.ServiceName,
		&r.Details, &r.Message, &r.Language,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Lang язык заявки
func (r BookingRequest) Lang() Language {
	return ParseLanguage(r.Language)
}

// Note текст пожеланий клиента; форма присылает его как details или message
func (r BookingRequest) Note() string {
	if r.Details != "" {
		return r.Details
	}
	return r.Message
}

// FullName имя и фамилия клиента
func (r BookingRequest) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// ServiceLabel название услуги, если форма его передала, иначе идентификатор
func (r BookingRequest) ServiceLabel() string {
	if r.ServiceName != "" {
		return r.ServiceName
	}
	return r.ServiceID
}

// ArtistLabel имя мастера, если форма его передала, иначе идентификатор
func (r BookingRequest) ArtistLabel() string {
	if r.ArtistName != "" {
		return r.ArtistName
	}
	return r.ArtistID
}

// ContactRequest сообщение из контактной формы
type ContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,simpleemail"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Language string `json:"language,omitempty"`
}

// Normalize обрезает пробелы в строковых полях; email проверяется как есть
func (r *ContactRequest) Normalize() {
	for _, f := range []*string{&r.Name, &r.Subject, &r.Message, &r.Phone, &r.Language} {
		*f = strings.TrimSpace(*f)
	}
}

// Lang язык сообщения
func (r ContactRequest) Lang() Language {
	return ParseLanguage(r.Language)
}
