// Package mail implements the Mailer collaborator over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"nuovo/config"
	"nuovo/internal/domain/service"

	"github.com/pkg/errors"
)

type smtpMailer struct {
	addr     string
	host     string
	from     string
	username string
	password string

	// rootCAs overrides the system trust store; tests use it with a local
	// TLS server. Nil in production.
	rootCAs *x509.CertPool
}

// New creates an SMTP mailer from the mail configuration.
func New(cfg *config.Config) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail host must be configured")
	}

	return &smtpMailer{
		addr:     net.JoinHostPort(cfg.Mail.Host, strconv.Itoa(cfg.Mail.Port)),
		host:     cfg.Mail.Host,
		from:     cfg.Mail.From,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
	}, nil
}

// Send delivers one plain-text message. The context deadline bounds the whole
// exchange: the connection deadline is set from it, so a stalled server fails
// the send instead of hanging the caller.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return errors.Wrapf(err, "dial smtp server %s", m.addr)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()

			return errors.Wrap(err, "set smtp connection deadline")
		}
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()

		return errors.Wrap(err, "smtp handshake")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(m.tlsClientConfig()); err != nil {
			return errors.Wrap(err, "smtp starttls")
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}

	if err := client.Mail(m.from); err != nil {
		return errors.Wrap(err, "smtp mail from")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrapf(err, "smtp rcpt to %s", to)
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp data")
	}
	if _, err := w.Write([]byte(formatMessage(m.from, to, subject, body))); err != nil {
		return errors.Wrap(err, "smtp write body")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "smtp close body")
	}

	return errors.Wrap(client.Quit(), "smtp quit")
}

// tlsClientConfig names the server for certificate verification.
func (m *smtpMailer) tlsClientConfig() *tls.Config {
	cfg := &tls.Config{ServerName: m.host}
	if m.rootCAs != nil {
		cfg.RootCAs = m.rootCAs
	}

	return cfg
}

func formatMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return b.String()
}
