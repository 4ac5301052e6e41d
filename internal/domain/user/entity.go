package user

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "user-demo/pkg/errors"
	"user-demo/pkg/validation"
)

var validate = validation.New()

// User represents a user entity in the system.
type User struct {
	Name  string `validate:"required"`   // Name is the display name of the user
	Age   int    `validate:"gte=0"`      // Age in whole years
	Email string `validate:"emailshape"` // Email always satisfies IsValidEmail
}

// NewUser creates a user after validating every field, including the initial email.
func NewUser(name string, age int, email string) (*User, error) {
	u := &User{Name: name, Age: age, Email: email}

	if err := validate.Struct(u); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Field() == "Email" {
					return nil, apperrors.NewInvalidEmailError(email)
				}
			}
		}
		return nil, apperrors.NewValidationError("", strings.Join(validation.Messages(err), ", "))
	}

	return u, nil
}

// IsValidEmail reports whether candidate has the local@domain.tld shape.
func IsValidEmail(candidate string) bool {
	return validation.IsEmailShape(candidate)
}

// UpdateEmail replaces the email if newEmail is valid.
// On failure the stored email is left unchanged.
func (u *User) UpdateEmail(newEmail string) error {
	if !IsValidEmail(newEmail) {
		return apperrors.NewInvalidEmailError(newEmail)
	}
	u.Email = newEmail
	return nil
}

// Details formats the user for display.
func (u *User) Details() string {
	return fmt.Sprintf("Name: %s, Age: %d, Email: %s", u.Name, u.Age, u.Email)
}
