package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/milan-codes/studician-api/internal/response"
)

// maxUnixSeconds bounds timestamp fields to something a calendar can show
// (January 1st, 3000).
const maxUnixSeconds = 32503680000

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// BindError is a classified request binding failure: payloads missing
// required fields report a different code than payloads with fields of the
// wrong type or out-of-range values.
type BindError struct {
	Code   response.ErrCode
	Fields map[string]string
}

// Setup registers the validator with English translations and the custom
// timestamp rule on Gin's binding engine. Call once during startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("unixts", isUnixTimestamp)

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterTranslation("unixts", trans,
			func(ut ut.Translator) error {
				return ut.Add("unixts", "{0} must be a valid point in time", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("unixts", fe.Field())
				return t
			})
	}
}

// isUnixTimestamp accepts integer fields holding a plausible unix-seconds
// value. Pointer fields arrive dereferenced; nil ones are skipped by
// omitempty before this rule runs.
func isUnixTimestamp(fl govalidator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		sec := fl.Field().Int()
		return sec >= 0 && sec < maxUnixSeconds
	default:
		return false
	}
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a classified error on failure.
func Bind(c *gin.Context, dst interface{}) *BindError {
	if err := c.ShouldBindJSON(dst); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps a binding failure onto the API's validation taxonomy:
// a payload whose only failures are absent required fields is reported as
// missing parameters, anything else as invalid parameter types.
func classify(err error) *BindError {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		missingOnly := true
		for _, fe := range ve {
			if fe.Tag() != "required" {
				missingOnly = false
			}
			fields[fe.Field()] = fe.Translate(trans)
		}
		code := response.ErrInvalidParameters
		if missingOnly {
			code = response.ErrMissingParameters
		}
		return &BindError{Code: code, Fields: fields}
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		fields[ute.Field] = "must be of type " + ute.Type.String()
		return &BindError{Code: response.ErrInvalidParameters, Fields: fields}
	}

	// JSON syntax error, empty body, etc.
	fields["detail"] = err.Error()
	return &BindError{Code: response.ErrInvalidParameters, Fields: fields}
}
