package validator

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate

	permissionPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z][a-z0-9_-]*$`)
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// Message renders a short human readable message for the failure.
func (v ValidationError) Message() string {
	switch v.Tag {
	case "required":
		return v.Field + " is required"
	case "email":
		return v.Field + " must be a valid email address"
	case "json":
		return v.Field + " must be valid JSON"
	case "permission":
		return v.Field + " must look like resource:action"
	case "oneof":
		return v.Field + " must be one of [" + v.Param + "]"
	case "min", "gte":
		return v.Field + " must be at least " + v.Param
	case "max", "lte":
		return v.Field + " must be at most " + v.Param
	case "gt":
		return v.Field + " must be greater than " + v.Param
	}
	if v.Param != "" {
		return v.Field + " failed on " + v.Tag + "=" + v.Param
	}
	return v.Field + " failed on " + v.Tag
}

// ValidationErrors collects multiple validation failures.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(v))
	for i, err := range v {
		if err.Param != "" {
			parts[i] = err.Field + " failed on " + err.Tag + "=" + err.Param
		} else {
			parts[i] = err.Field + " failed on " + err.Tag
		}
	}
	return strings.Join(parts, "; ")
}

// AppError converts the failures into the normalized API error so that a payload
// rejected locally looks exactly like one rejected by the backend.
func (v ValidationErrors) AppError() *apperrors.AppError {
	fields := make(map[string][]string, len(v))
	for _, fe := range v {
		fields[fe.Field] = append(fields[fe.Field], fe.Message())
	}
	return &apperrors.AppError{
		Code:       apperrors.ErrValidation.Code,
		Message:    apperrors.ErrValidation.Message,
		StatusCode: apperrors.ErrValidation.StatusCode,
		Errors:     fields,
	}
}

// ValidateStruct validates a struct using registered rules.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		failures := make(ValidationErrors, 0, len(ve))
		for _, fe := range ve {
			failures = append(failures, ValidationError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
		return failures
	}

	return err
}

// ValidatePayload validates a request payload and returns a normalized *AppError on failure.
// Non-struct payloads are accepted unchanged.
func ValidatePayload(payload interface{}) error {
	if payload == nil {
		return nil
	}
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	err := ValidateStruct(payload)
	if err == nil {
		return nil
	}
	if failures, ok := err.(ValidationErrors); ok {
		return failures.AppError()
	}
	return apperrors.NewBadRequest(err.Error())
}

// RegisterValidation exposes underlying validator custom rules.
func RegisterValidation(tag string, fn validator.Func) error {
	return getValidator().RegisterValidation(tag, fn)
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "" {
				return fld.Name
			}

			comma := strings.Index(name, ",")
			if comma != -1 {
				name = name[:comma]
			}

			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
			return permissionPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}
