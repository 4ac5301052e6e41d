package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailShapeTag is the struct tag registered for the email shape check.
const EmailShapeTag = "emailshape"

// emailPart is one run of characters that are neither '@' nor whitespace.
// RE2's \s is ASCII only, so the Unicode space separators are listed.
const emailPart = `[^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]+`

// emailShape matches local@domain.tld where no part contains whitespace or '@'.
var emailShape = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// IsEmailShape reports whether candidate looks like local@domain.tld.
// It is intentionally permissive: no length limits and no RFC 5322 rules.
func IsEmailShape(candidate string) bool {
	return emailShape.MatchString(candidate)
}

// New returns a validator with the custom tags of this module registered.
func New() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(EmailShapeTag, func(fl validator.FieldLevel) bool {
		return IsEmailShape(fl.Field().String())
	}); err != nil {
		// only fails on an empty tag or nil func
		panic(err)
	}
	return v
}

// FormatValidationError converts validator.ValidationErrors into a human-readable error message.
func FormatValidationError(err error) error {
	if messages := Messages(err); messages != nil {
		return fmt.Errorf("validation failed: %s", strings.Join(messages, ", "))
	}
	return err
}

// Messages returns one message per failed field, or nil if err is not a
// validator.ValidationErrors.
func Messages(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case EmailShapeTag, "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min", "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		case "max", "lte":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return messages
}
