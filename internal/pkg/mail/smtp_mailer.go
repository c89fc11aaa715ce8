package mail

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/franhub/franhub/internal/pkg/env"
)

// SendMail delivers an HTML mail through the configured SMTP relay. With
// no SMTP_HOST set the mail is logged and dropped, which keeps local
// development and tests from needing a relay.
func SendMail(to, subject, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	if host == "" {
		log.Infof("mail to %s suppressed (no SMTP_HOST): %s", to, subject)
		return nil
	}

	sender := env.GetEnv("SMTP_SENDER", "no-reply@franhub.local")

	var auth smtp.Auth
	if user := env.GetEnv("SMTP_USERNAME", ""); user != "" {
		auth = smtp.PlainAuth("", user, env.GetEnv("SMTP_PASSWORD", ""), host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := net.JoinHostPort(host, env.GetEnv("SMTP_PORT", "587"))
	if err := smtp.SendMail(addr, auth, sender, []string{to}, []byte(msg.String())); err != nil {
		log.Errorf("smtp send to %s failed: %v", to, err)
		return err
	}

	log.Debugf("mail sent to %s via %s", to, addr)
	return nil
}
