package notification

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
)

const defaultFrom = "noreply@salon.local"

// SMTPConfig параметры SMTP сервера; пустой Host отключает email
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sendMailFunc сигнатура smtp.SendMail, подменяется в тестах
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender отправляет письма через SMTP
type SMTPSender struct {
	addr     string
	host     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

// NewSMTPSender создает отправителя писем
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	host := strings.TrimSpace(cfg.Host)
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = defaultFrom
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}

	return &SMTPSender{
		addr:     net.JoinHostPort(host, strconv.Itoa(cfg.Port)),
		host:     host,
		from:     from,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

// Enabled true, если SMTP сервер настроен
func (s *SMTPSender) Enabled() bool {
	return s != nil && s.host != ""
}

// Send отправляет текстовое письмо
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	addr, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}

	msg := buildMessage(s.from, addr.Address, subject, body)
	if err := s.sendMail(s.addr, s.auth, s.from, []string{addr.Address}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrDelivery, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
