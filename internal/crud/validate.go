package crud

import (
	"errors"
	"net/mail"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EmailRule checks that a string parses as a single RFC 5322 address.
// Blank values are left to Required.
var EmailRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.New("must be a valid email address")
	}
	return nil
})
