package session

import (
	"errors"
	"strings"
	"unicode/utf8"

	"daily-planner-go/internal/apierr"
)

const (
	minUsernameLength = 3
	phoneNumberLength = 11
	minPasswordLength = 6
)

var ErrNotLoggedIn = errors.New("not logged in")

func validateLogin(account, password string) error {
	var errs []error
	if strings.TrimSpace(account) == "" {
		errs = append(errs, apierr.Invalid("account", "enter a username or phone number"))
	}
	if password == "" {
		errs = append(errs, apierr.Invalid("password", "enter a password"))
	}
	return errors.Join(errs...)
}

func validateRegister(input RegisterInput) error {
	var errs []error
	switch username := strings.TrimSpace(input.Username); {
	case username == "":
		errs = append(errs, apierr.Invalid("username", "enter a username"))
	case utf8.RuneCountInString(username) < minUsernameLength:
		errs = append(errs, apierr.Invalid("username", "username must be at least 3 characters"))
	}
	switch phone := strings.TrimSpace(input.PhoneNumber); {
	case phone == "":
		errs = append(errs, apierr.Invalid("phone_number", "enter a phone number"))
	case utf8.RuneCountInString(phone) != phoneNumberLength:
		errs = append(errs, apierr.Invalid("phone_number", "enter a valid phone number"))
	}
	if err := validatePassword("password", input.Password); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validatePassword(field, password string) error {
	switch {
	case password == "":
		return apierr.Invalid(field, "enter a password")
	case utf8.RuneCountInString(password) < minPasswordLength:
		return apierr.Invalid(field, "password must be at least 6 characters")
	}
	return nil
}
