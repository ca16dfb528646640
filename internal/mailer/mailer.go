package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Mailer relays contact-form messages over SMTP. Every send is bounded
// by a dial timeout and a connection deadline so a stalled SMTP server
// cannot hang the request that triggered it.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	recipient string
}

const (
	dialTimeout = 8 * time.Second
	sendTimeout = 15 * time.Second
)

func NewFromEnv() (*Mailer, error) {
	m := &Mailer{
		host:      os.Getenv("SMTP_HOST"),
		port:      os.Getenv("SMTP_PORT"),
		username:  os.Getenv("SMTP_USERNAME"),
		password:  os.Getenv("SMTP_PASSWORD"),
		recipient: os.Getenv("CONTACT_RECIPIENT"),
	}

	if m.host == "" || m.username == "" || m.recipient == "" {
		return nil, fmt.Errorf("SMTP_HOST, SMTP_USERNAME and CONTACT_RECIPIENT must be set")
	}

	if m.port == "" {
		m.port = "587"
	}

	return m, nil
}

// SendContactMessage forwards a visitor's message to the configured
// recipient, with the visitor's address as Reply-To.
func (m *Mailer) SendContactMessage(from, subject, message string) error {
	body := strings.Join([]string{
		fmt.Sprintf("From: %s", m.username),
		fmt.Sprintf("Reply-To: %s", from),
		fmt.Sprintf("To: %s", m.recipient),
		fmt.Sprintf("Subject: Contact form: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		fmt.Sprintf("Sender: %s", from),
		"",
		message,
	}, "\r\n")

	return m.send([]byte(body))
}

func (m *Mailer) send(msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(sendTimeout))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(m.username); err != nil {
		return err
	}
	if err := c.Rcpt(m.recipient); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
