package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Config holds everything one watchdog cycle needs. It is loaded once per
// run and never mutated afterwards.
type Config struct {
	PingURL  string     `yaml:"ping_url" validate:"required,http_url"`
	MailFrom string     `yaml:"mail_from" validate:"required,email"`
	MailTo   string     `yaml:"mail_to" validate:"required,email"`
	Hostname string     `yaml:"hostname"`
	Timeouts []Duration `yaml:"timeouts"`
	SMTP     SMTP       `yaml:"smtp"`
	Mail     Mail       `yaml:"mail"`
	Dirs     Dirs       `yaml:"dirs"`
}

type SMTP struct {
	Server string `yaml:"server" validate:"required,hostname|ip"`
	Port   int    `yaml:"port" validate:"required,min=1,max=65535"`
	User   string `yaml:"user"`
}

// Mail holds optional overrides for the alert email templates.
type Mail struct {
	SubjectTemplate string `yaml:"subject_template"`
	BodyTemplate    string `yaml:"body_template"`
}

type Dirs struct {
	State string `yaml:"state"`
	Logs  string `yaml:"logs"`
}

// Duration handles duration strings like "5s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("timeout: must be a duration string like \"5s\"")
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if v <= 0 {
		return fmt.Errorf("timeout: must be positive, got %s", s)
	}
	*d = Duration(v)
	return nil
}

// DefaultTimeouts is the per-attempt timeout schedule used when the config
// does not set one. Each retry gets a longer timeout than the last, on the
// assumption that a first timeout may be transient network jitter.
var DefaultTimeouts = []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second}

// TimeoutSchedule returns the configured schedule, or DefaultTimeouts.
func (c *Config) TimeoutSchedule() []time.Duration {
	if len(c.Timeouts) == 0 {
		return DefaultTimeouts
	}
	out := make([]time.Duration, len(c.Timeouts))
	for i, d := range c.Timeouts {
		out[i] = time.Duration(d)
	}
	return out
}

// SMTPLogin returns the login identity for the mail submission: the
// configured SMTP user, or the From address when no user is set.
func (c *Config) SMTPLogin() string {
	if c.SMTP.User != "" {
		return c.SMTP.User
	}
	return c.MailFrom
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every required key is present and well-formed.
// A config that fails here aborts the run before any network I/O.
func (c *Config) Validate() error {
	v := validator.New()

	// Report fields by their yaml key, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating config: %w", err)
	}

	fe := verrs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Tag() == "required" {
		return fmt.Errorf("config: missing required key %q", key)
	}
	return fmt.Errorf("config: invalid value for %q: %v", key, fe.Value())
}
