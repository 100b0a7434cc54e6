package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports failures under the json field name, so the 422
// error map matches the keys clients sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return snakeCase(fld.Name)
		}
		return name
	})
	return v
}

// FieldErrors maps snake_case field names to their failure messages.
type FieldErrors map[string][]string

// Add appends a failure message for a field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Error is returned when a request payload fails validation. Handlers render
// it as a 422 body of the form {"message": ..., "errors": {field: [msgs]}}.
type Error struct {
	Errors FieldErrors
}

func (e *Error) Error() string {
	return "the given data was invalid"
}

// NewError builds a validation Error with a single field failure.
func NewError(field, msg string) *Error {
	fe := FieldErrors{}
	fe.Add(field, msg)
	return &Error{Errors: fe}
}

// AsError unwraps err into a validation *Error if it is one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Struct runs tag-based validation on a request struct and converts
// validator failures into a validation *Error keyed by the json field name.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}

	fe := FieldErrors{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, f := range fieldErrs {
			fe.Add(fieldName(f), message(f))
		}
	}
	return &Error{Errors: fe}
}

// fieldName is the json tag name registered on the validator above.
func fieldName(f validator.FieldError) string {
	return f.Field()
}

// snakeCase is the fallback for struct fields without a json tag. A run of
// capitals is one word, so QuestionID becomes question_id.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// message renders a human-readable failure for a single validator tag.
func message(f validator.FieldError) string {
	name := fieldName(f)
	switch f.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		if f.Kind().String() == "string" {
			return fmt.Sprintf("The %s may not be greater than %s characters.", name, f.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", name, f.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s.", name, f.Param())
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", name, f.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
