package service

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength = 100
	MaxURLLength  = 255
)

// recordInput is the shape shared by bookmark and feed creation requests.
type recordInput struct {
	Name string `json:"name" validate:"required,max=100"`
	URL  string `json:"url" validate:"required,max=255,httpurl"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return ValidateURL(fl.Field().String()) == nil
	}); err != nil {
		panic(fmt.Sprintf("register httpurl validation: %v", err))
	}
	return v
}

// ValidateURL accepts only absolute http or https URLs with a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return errors.New("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// newRecordInput trims and validates a name/url pair. The name is otherwise
// stored exactly as submitted; clients render it as text.
func newRecordInput(name, rawURL string) (recordInput, error) {
	in := recordInput{
		Name: strings.TrimSpace(name),
		URL:  strings.TrimSpace(rawURL),
	}
	if err := validate.Struct(in); err != nil {
		return recordInput{}, toValidationError(err)
	}
	return in, nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := fieldErrs[0]
	reason := "is invalid"
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "httpurl":
		reason = "must be an http or https URL"
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}
