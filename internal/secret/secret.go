// Package secret resolves the SMTP credential from the host secret store.
package secret

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name the credential is stored under,
// e.g. `secret-tool store --label=smtp service smtp username <user>`.
const Service = "smtp"

// EnvVar overrides the keyring lookup, for headless hosts without a
// usable secret store.
const EnvVar = "VIGIL_SMTP_PASSWORD"

// NotFoundError means no credential exists for the given login identity.
// This is fatal before any network I/O.
type NotFoundError struct {
	User string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no SMTP password found in keyring for user %q (service %q)", e.User, Service)
}

// Resolve returns the SMTP password for user, preferring the environment
// override, then the OS keyring.
func Resolve(user string) (string, error) {
	if pw := os.Getenv(EnvVar); pw != "" {
		return pw, nil
	}

	pw, err := keyring.Get(Service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", &NotFoundError{User: user}
		}
		return "", fmt.Errorf("reading keyring: %w", err)
	}
	if pw == "" {
		return "", &NotFoundError{User: user}
	}
	return pw, nil
}
