package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// SMTPConfig is the outbound mail server and envelope for trigger mail.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       []string
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && len(c.To) > 0
}

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailNotifier sends one summary email per sweep.
type EmailNotifier struct {
	cfg    SMTPConfig
	logger logrus.FieldLogger
	send   sendFunc
}

func NewEmailNotifier(cfg SMTPConfig, logger logrus.FieldLogger) *EmailNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
		send:   func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Message builds the summary email for a batch.
func (n *EmailNotifier) Message(events []trigger.Event) *email.Email {
	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = append([]string(nil), n.cfg.To...)
	if len(events) == 1 {
		e.Subject = fmt.Sprintf("Asset activated: %s", events[0].Name)
	} else {
		e.Subject = fmt.Sprintf("%d assets activated", len(events))
	}

	var b strings.Builder
	b.WriteString("The following scheduled assets reached their date and are now active:\n\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "- %s: %s (on %s)\n", ev.Name, ev.Value.StringFixed(2), ev.TriggeredDate)
	}
	b.WriteString("\nYour projection now includes these values.\n")
	e.Text = []byte(b.String())
	return e
}

func (n *EmailNotifier) Notify(ctx context.Context, events []trigger.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := n.Message(events)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)
	if err := n.send(msg, addr, auth); err != nil {
		n.logger.WithError(err).WithField("to", strings.Join(n.cfg.To, ",")).Error("sending trigger email")
		return fmt.Errorf("sending trigger email: %w", err)
	}
	n.logger.WithField("subject", msg.Subject).Info("trigger email sent")
	return nil
}
