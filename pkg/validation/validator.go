package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLen = 6
	// bcrypt reads at most 72 bytes of input.
	MaxPasswordBytes = 72
	MinNameLen       = 2
	MaxBioLen        = 500
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-\(\)]`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// NormalizePhone strips whitespace, dashes and parentheses.
func NormalizePhone(s string) string {
	return phoneSeparators.ReplaceAllString(s, "")
}

// IsPhone reports whether s is a loose E.164 number once separators are removed.
func IsPhone(s string) bool {
	return phonePattern.MatchString(NormalizePhone(s))
}

// IsName reports whether s has at least MinNameLen characters after trimming.
func IsName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinNameLen
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("name", func(fl validator.FieldLevel) bool {
		return IsName(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("pwd", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= MinPasswordLen
	})
	_ = v.RegisterValidation("pwdmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the validator used outside of request binding.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New()
		register(engine)
	})
	return engine
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the custom tags name, phone, pwd and pwdmax.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return Engine().Var(s, "email") == nil
}

// IsURL reports whether s is a syntactically valid absolute URL.
func IsURL(s string) bool {
	return Engine().Var(s, "url") == nil
}

// IsPayloadError reports whether err comes from decoding rather than validation.
func IsPayloadError(err error) bool {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	return errors.As(err, &se) || errors.As(err, &ute) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// FailedFields returns field -> failed tag for every validation failure in err.
func FailedFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// HasTag reports whether any failure in err was raised by tag.
func HasTag(err error, tag string) bool {
	for _, t := range FailedFields(err) {
		if t == tag {
			return true
		}
	}
	return false
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if IsPayloadError(err) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "eqfield":
		return "must be equal to " + param + " field"
	case "name":
		return fmt.Sprintf("must be at least %d characters long", MinNameLen)
	case "phone":
		return "must be a valid phone number"
	case "pwd":
		return fmt.Sprintf("must be at least %d characters long", MinPasswordLen)
	case "pwdmax":
		return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
