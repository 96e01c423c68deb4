package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"reminders/internal/core/domain"
	"reminders/internal/core/model/response"
	"reminders/internal/core/port"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which is what clients send.
	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})
}

// StructValidator adapts the package validator to port.Validator.
type StructValidator struct{}

var _ port.Validator = StructValidator{}

func New() StructValidator {
	return StructValidator{}
}

func (StructValidator) ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	verr := &domain.ValidationError{}
	for _, fe := range validationErrors {
		verr.Fields = append(verr.Fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(Translator),
		})
	}

	return verr
}

// FormatValidationErrors flattens a domain validation error for the response
// envelope. Any other error yields nil.
func FormatValidationErrors(err error) []response.ValidationError {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	out := make([]response.ValidationError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, response.ValidationError{
			Field:   f.Field,
			Message: f.Message,
		})
	}

	return out
}
