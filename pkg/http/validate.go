package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate names fields after their query tag so errors match what the client sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"query", "json"} {
			if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// BindQuery fills req from the query string on any method. `default` tags apply
// first, so an explicit parameter always wins, including an explicit zero.
// It returns nil or the field errors to send back with a 400.
func BindQuery(c echo.Context, req interface{}) []ValidationError {
	if err := defaults.Set(req); err != nil {
		return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
	}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg = fmt.Sprint(he.Message)
		}
		return []ValidationError{{Code: "ERR_BIND", Message: msg}}
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validationErrors(err)
	}
	return nil
}

// ruleMessages maps a validator tag to its message format (field, param).
var ruleMessages = map[string]string{
	"required": "%s is required",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be at least %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be at most %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"oneof":    "%s must be one of: %s",
}

// ruleParams names the single parameter a tag carries in the error payload.
var ruleParams = map[string]string{
	"gt": "value", "lt": "value",
	"gte": "min", "min": "min",
	"lte": "max", "max": "max",
	"oneof": "options",
}

func validationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
	}
	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fieldError(fe))
	}
	return out
}

func fieldError(fe validator.FieldError) ValidationError {
	tag, param := fe.Tag(), fe.Param()
	ve := ValidationError{
		Code:    "ERR_" + strings.ToUpper(tag),
		Field:   fe.Field(),
		Message: fmt.Sprintf("%s failed validation: %s", fe.Field(), tag),
	}
	if format, ok := ruleMessages[tag]; ok {
		shown := param
		if tag == "oneof" {
			shown = strings.ReplaceAll(param, " ", ", ")
		}
		if tag == "required" {
			ve.Message = fmt.Sprintf(format, fe.Field())
		} else {
			ve.Message = fmt.Sprintf(format, fe.Field(), shown)
		}
	}
	if key, ok := ruleParams[tag]; ok {
		var v interface{} = param
		if tag == "oneof" {
			v = strings.Fields(param)
		}
		ve.Params = map[string]interface{}{key: v}
	}
	return ve
}
