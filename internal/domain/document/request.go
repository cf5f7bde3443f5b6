package document

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/esrelay/internal/domain"
)

// Request is an incoming document-creation request.
type Request struct {
	Title string `json:"title" validate:"notblank"`
	Text  string `json:"text" validate:"notblank"`
}

// ToDocument converts a validated request into a Document.
func (r Request) ToDocument() Document {
	return New(r.Title, r.Text)
}

// ValidationError lists field-level validation failures keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = e.Fields[name]
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidDocument.Error(), strings.Join(msgs, ", "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidDocument }

// Validator checks document requests. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the notblank rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate returns a *ValidationError when title or text is missing or blank.
func (v *Validator) Validate(r *Request) error {
	err := v.validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate document request: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "notblank":
			fields[fe.Field()] = fe.Field() + " must not be blank"
		default:
			fields[fe.Field()] = fe.Field() + " is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}
