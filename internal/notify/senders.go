package notify

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/ongood/metabase-sub001/internal/config"
)

// SMTPSender returns a SendFunc that relays through the configured SMTP server.
func SMTPSender(cfg config.SMTPConfig) SendFunc {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return func(ctx context.Context, to []string, subject, body string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := buildMessage(cfg.From, to, subject, body)
		if err := smtp.SendMail(addr, auth, cfg.From, to, msg); err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

// LogSender returns a SendFunc that only logs messages. Used when SMTP is not configured.
func LogSender() SendFunc {
	return func(_ context.Context, to []string, subject, _ string) error {
		log.Printf("mail (not sent, SMTP disabled): to=%s subject=%q", strings.Join(to, ","), subject)
		return nil
	}
}

// SenderFor picks the SMTP sender when configured and the log sender otherwise.
func SenderFor(cfg config.SMTPConfig) SendFunc {
	if cfg.Enabled() {
		return SMTPSender(cfg)
	}
	return LogSender()
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
