package course

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the unit's identifying fields. Term membership in the
// configured term set is the caller's concern; here only presence is
// enforced.
func (u *Unit) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("COURSE_VALIDATE: %w", err)
	}
	return nil
}

func (a *Assessment) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("COURSE_VALIDATE: %w", err)
	}
	return nil
}
