package domain

import (
	"regexp"

	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func requireField(name, value string) error {
	if value == "" {
		return domerrors.Invariant("%s is required", name)
	}
	return nil
}

func validateEmail(value string) error {
	if value == "" {
		return domerrors.Invariant("email is required")
	}
	if !emailRegex.MatchString(value) {
		return domerrors.Invariant("email is invalid")
	}
	return nil
}

func validateSlug(value string) error {
	if value == "" {
		return domerrors.Invariant("slug is required")
	}
	if !slugRegex.MatchString(value) {
		return domerrors.Invariant("slug must be lowercase letters, digits and hyphens")
	}
	return nil
}
