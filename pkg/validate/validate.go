package validate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ValidationErrors aggregates every violation of a payload.
type ValidationErrors struct {
	Violations []Violation
}

func (e *ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return msgs
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, Violation{
			Field:   fe.Field(),
			Message: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		// missing fields never get here, the schema reports them first
		return "must not be empty"
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// Decode checks raw against schema, decodes it into dst and applies the struct
// rules of validateFn. All violations are returned together as *ValidationErrors;
// a field that failed the schema is not reported again by the struct rules.
func Decode(raw []byte, schema Schema, dst any, validateFn func(i interface{}) error) error {
	violations := schema.Check(raw)
	failed := make(map[string]struct{}, len(violations))
	for _, v := range violations {
		if v.Field == "" {
			return &ValidationErrors{Violations: violations}
		}
		failed[v.Field] = struct{}{}
	}

	// type errors are already reported by the schema, the rest of dst is still filled
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || len(violations) == 0 {
			return &ValidationErrors{Violations: append(violations, Violation{Message: err.Error()})}
		}
	}

	if validateFn != nil {
		err := validateFn(dst)
		var ruleErrs *ValidationErrors
		switch {
		case err == nil:
		case errors.As(err, &ruleErrs):
			for _, v := range ruleErrs.Violations {
				if _, ok := failed[v.Field]; !ok {
					violations = append(violations, v)
				}
			}
		default:
			return err
		}
	}

	if len(violations) > 0 {
		return &ValidationErrors{Violations: violations}
	}
	return nil
}
