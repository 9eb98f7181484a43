/*
Package mail implements outbound email dispatch over SMTP.

DRY-RUN MODE:
  With no SMTP host configured the sender logs the message instead of
  dialing. That keeps local development and tests free of network I/O
  while exercising the same call path.
*/
package mail

import (
	"errors"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings. An empty Host enables dry-run mode.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSL      bool   `yaml:"ssl"` // implicit TLS; STARTTLS is negotiated otherwise
}

// Sender sends email through one SMTP account.
type Sender struct {
	cfg  Config
	log  *zap.Logger
	send func(m ...*gomail.Message) error
}

// NewSender creates a sender for the given SMTP account.
func NewSender(cfg Config, log *zap.Logger) *Sender {
	s := &Sender{cfg: cfg, log: log}
	if cfg.Host != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		d.SSL = cfg.SSL
		s.send = d.DialAndSend
	}
	return s
}

// From returns the configured sender address.
func (s *Sender) From() string { return s.cfg.Username }

// Send delivers one message to the given recipients. The body is sent as
// text/html when html is true, text/plain otherwise.
func (s *Sender) Send(to []string, subject, body string, html bool) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	if s.send == nil {
		s.log.Info("email dry-run (no SMTP host configured)",
			zap.Strings("to", to),
			zap.String("subject", subject),
			zap.Bool("html", html),
		)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Username)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}
	m.SetBody(contentType, body)

	return s.send(m)
}
