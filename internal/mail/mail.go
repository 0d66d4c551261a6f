// Package mail delivers alert emails over authenticated, STARTTLS-upgraded
// SMTP. Delivery is a single attempt: the escalation path has no secondary
// channel, so a mail failure is fatal to the run.
package mail

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Message is one fully composed alert email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// DeliveryError wraps any SMTP connection, auth, or submission failure.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering alert email: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Client submits messages to a single SMTP server.
type Client struct {
	server   string
	port     int
	user     string
	password string
	logger   *slog.Logger
}

func New(server string, port int, user, password string, logger *slog.Logger) *Client {
	return &Client{
		server:   server,
		port:     port,
		user:     user,
		password: password,
		logger:   logger,
	}
}

// Send submits msg in one attempt. The credential never reaches the log.
func (c *Client) Send(msg Message) error {
	c.logger.Info("sending alert email", "to", msg.To, "server", c.server, "port", c.port)

	sender, err := shoutrrr.CreateSender(c.smtpURL(msg))
	if err != nil {
		return &DeliveryError{Err: err}
	}

	params := types.Params{"subject": msg.Subject}
	for _, e := range sender.Send(msg.Body, &params) {
		if e != nil {
			return &DeliveryError{Err: e}
		}
	}

	c.logger.Info("alert email sent", "to", msg.To)
	return nil
}

// smtpURL builds the shoutrrr smtp:// target. The login identity falls back
// to the From address when no SMTP user is configured.
func (c *Client) smtpURL(msg Message) string {
	login := c.user
	if login == "" {
		login = msg.From
	}

	q := url.Values{}
	q.Set("from", msg.From)
	q.Set("to", msg.To)
	q.Set("auth", "Plain")
	q.Set("usestarttls", "Yes")

	u := url.URL{
		Scheme:   "smtp",
		User:     url.UserPassword(login, c.password),
		Host:     net.JoinHostPort(c.server, strconv.Itoa(c.port)),
		Path:     "/",
		RawQuery: q.Encode(),
	}
	return u.String()
}
