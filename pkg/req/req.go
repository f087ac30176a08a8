package req

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/medusa-studio/booking-api/internal/domain"
)

// emailPattern намеренно простая форма local@domain.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator возвращает общий экземпляр validator с правилом simpleemail
// и именами полей из json-тегов.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsEmail проверяет адрес по простому шаблону
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Decode декодирует JSON из io.ReadCloser в структуру типа T.
func Decode[T any](body io.ReadCloser) (T, error) {
	var payload T
	if body == nil {
		return payload, errors.New("empty request body")
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// IsValid валидирует структуру типа T и возвращает domain.ValidationErrors
func IsValid[T any](payload T) error {
	err := Validator().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var verrs domain.ValidationErrors
	for _, fe := range fieldErrs {
		verrs.Add(fe.Field(), messageFor(fe))
	}
	return verrs
}

// HandleBody декодирует и валидирует тело запроса. Некорректный JSON тоже считается
// ошибкой валидации, но частично декодированные поля (например, language) возвращаются.
func HandleBody[T any](body io.ReadCloser) (T, error) {
	payload, err := Decode[T](body)
	if err != nil {
		var verrs domain.ValidationErrors
		verrs.Add("body", "malformed JSON")
		return payload, verrs
	}
	if n, ok := any(&payload).(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := IsValid(payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "simpleemail":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
