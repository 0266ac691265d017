package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for completeness and well-formedness.
// Beyond struct tags it requires the install directory to be absolute,
// since the provisioner runs from an arbitrary working directory.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return friendlyError(verrs[0])
		}
		return err
	}

	if c.InstallDir != "" && !filepath.IsAbs(c.InstallDir) {
		return fmt.Errorf("install directory must be an absolute path, got %q", c.InstallDir)
	}
	return nil
}

// ValidateDomain checks a single domain value, for use by prompt widgets.
func ValidateDomain(domain string) error {
	if err := validate.Var(domain, "required,fqdn"); err != nil {
		return errors.New("must be a fully qualified domain name, e.g. media.example.org")
	}
	return nil
}

// ValidateEmail checks a single email value, for use by prompt widgets.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return errors.New("must be a valid email address")
	}
	return nil
}

func friendlyError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Domain":
		return fmt.Errorf("domain %q is not a fully qualified domain name", fe.Value())
	case "Email":
		return fmt.Errorf("email %q is not a valid address", fe.Value())
	default:
		return fmt.Errorf("field %s failed %s validation", fe.Field(), fe.Tag())
	}
}
