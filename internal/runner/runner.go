// Package runner sequences one watchdog cycle: ping the monitoring
// endpoint, and on failure escalate to a human by email — at most once
// per contiguous outage, tracked by the durable alert marker.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/vigil-sh/vigil/internal/config"
	"github.com/vigil-sh/vigil/internal/mail"
)

// Pinger delivers the liveness signal. Attempts is the number of delivery
// attempts made; err is nil on success.
type Pinger interface {
	Ping(ctx context.Context, body string) (attempts int, err error)
}

// Mailer delivers one alert email in a single attempt.
type Mailer interface {
	Send(msg mail.Message) error
}

// Marker is the durable alert flag. Only the runner reads or writes it.
type Marker interface {
	Exists() (bool, error)
	Set() error
	Clear() error
}

// Runner owns the escalation state machine over the marker:
//
//	ping ok            → clear marker (idempotent)
//	ping failed, set   → suppress mail, re-raise the ping failure
//	ping failed, clear → mail; on success set marker, re-raise the ping
//	                     failure; on mail failure report the mail error
//	                     and leave the marker clear so the next run
//	                     retries the escalation
type Runner struct {
	cfg    *config.Config
	pinger Pinger
	mailer Mailer
	marker Marker
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg *config.Config, pinger Pinger, mailer Mailer, marker Marker, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		pinger: pinger,
		mailer: mailer,
		marker: marker,
		logger: logger,
		now:    time.Now,
	}
}

// Run executes one cycle. body is the optional diagnostic text sent with
// the ping.
func (r *Runner) Run(ctx context.Context, body string) Result {
	start := r.now()
	var result Result

	attempts, pingErr := r.pinger.Ping(ctx, body)
	result.Attempts = attempts

	if pingErr == nil {
		// Connectivity restored (or never lost): close out any
		// previously alerted outage.
		if err := r.marker.Clear(); err != nil {
			result.Err = err
			result.Stage = "state"
		} else {
			r.logger.Info("watchdog healthy", "attempts", attempts)
		}
		result.Duration = r.now().Sub(start)
		return result
	}

	result.Err = pingErr
	result.Stage = "ping"
	r.logger.Error("ping failed, escalating", "error", pingErr, "attempts", attempts)

	escalated, err := r.marker.Exists()
	if err != nil {
		result.Err = err
		result.Stage = "state"
		result.Duration = r.now().Sub(start)
		return result
	}

	if escalated {
		// Same outage as a previous run: the operator already knows.
		r.logger.Info("alert email already sent for this outage, skipping")
		result.Suppressed = true
		result.Duration = r.now().Sub(start)
		return result
	}

	msg, err := r.composeAlert(pingErr, attempts)
	if err != nil {
		result.Err = err
		result.Stage = "mail"
		result.Duration = r.now().Sub(start)
		return result
	}

	if err := r.mailer.Send(msg); err != nil {
		// The operator was not informed; this supersedes the ping
		// failure, and the marker stays clear so the next run retries.
		result.Err = err
		result.Stage = "mail"
		result.Duration = r.now().Sub(start)
		return result
	}
	result.Emailed = true

	if err := r.marker.Set(); err != nil {
		result.Err = err
		result.Stage = "state"
		result.Duration = r.now().Sub(start)
		return result
	}

	result.Duration = r.now().Sub(start)
	return result
}

func (r *Runner) composeAlert(pingErr error, attempts int) (mail.Message, error) {
	data := mail.TemplateData{
		PingURL:    r.cfg.PingURL,
		Reason:     pingErr.Error(),
		Attempts:   attempts,
		SMTPServer: r.cfg.SMTP.Server,
		Hostname:   r.cfg.Hostname,
		Timestamp:  r.now().Format("2006-01-02 15:04:05"),
	}

	subjTmpl := r.cfg.Mail.SubjectTemplate
	if subjTmpl == "" {
		subjTmpl = mail.DefaultSubjectTemplate
	}
	bodyTmpl := r.cfg.Mail.BodyTemplate
	if bodyTmpl == "" {
		bodyTmpl = mail.DefaultBodyTemplate
	}

	subject, err := mail.Render(subjTmpl, data)
	if err != nil {
		return mail.Message{}, err
	}
	body, err := mail.Render(bodyTmpl, data)
	if err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		From:    r.cfg.MailFrom,
		To:      r.cfg.MailTo,
		Subject: subject,
		Body:    body,
	}, nil
}
