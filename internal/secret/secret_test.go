package secret

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestResolveFromKeyring(t *testing.T) {
	keyring.MockInit()
	if err := keyring.Set(Service, "watchdog@example.com", "hunter2"); err != nil {
		t.Fatalf("seeding keyring: %v", err)
	}

	pw, err := Resolve("watchdog@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pw != "hunter2" {
		t.Errorf("password = %q, want hunter2", pw)
	}
}

func TestResolveNotFound(t *testing.T) {
	keyring.MockInit()

	_, err := Resolve("nobody@example.com")
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.User != "nobody@example.com" {
		t.Errorf("user = %q", nf.User)
	}
}

func TestResolveEnvOverride(t *testing.T) {
	keyring.MockInit()
	if err := keyring.Set(Service, "watchdog@example.com", "from-keyring"); err != nil {
		t.Fatalf("seeding keyring: %v", err)
	}

	t.Setenv(EnvVar, "from-env")
	pw, err := Resolve("watchdog@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pw != "from-env" {
		t.Errorf("password = %q, want env override to win", pw)
	}
}
