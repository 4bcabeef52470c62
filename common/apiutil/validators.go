package apiutil

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Aidin1998/apihub/common/errors"
)

// UseJSONFieldNames makes validator report json/form tag names instead of Go
// field names. Call once before serving.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// BindError turns a gin binding failure into a validation error.
func BindError(err error) error {
	var fieldsError validator.ValidationErrors
	if errors.As(err, &fieldsError) {
		validationErr := errors.Invalid.Explain("Request validation failed")
		for _, fieldErr := range fieldsError {
			validationErr = validationErr.WithField(fieldErr.Tag(), fieldErr.Field(), describe(fieldErr))
		}
		return validationErr
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errors.Invalid.Explain("Malformed JSON body").Wrap(err)
	}
	return errors.Invalid.Explain("Invalid request: %s", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "len":
		return fe.Field() + " must have length " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "url", "http_url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}
