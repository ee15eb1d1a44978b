package config

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

var (
	smtpHost      string
	smtpPort      int
	smtpUser      string
	smtpPass      string
	smtpFrom      string
	skipTLSVerify bool
)

func init() {
	ReloadMailerConfig()
}

// ReloadMailerConfig re-reads the SMTP settings from the environment.
// main calls it after godotenv.Load, which runs long after this package
// initializes.
func ReloadMailerConfig() {
	smtpHost = os.Getenv("SMTP_HOST")
	smtpPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}
	smtpUser = os.Getenv("SMTP_USER")
	smtpPass = os.Getenv("SMTP_PASS")
	smtpFrom = os.Getenv("SMTP_FROM") // e.g. "Job Board <no-reply@your.org>"
	skipTLSVerify = os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1"
}

// ContactMailbox is the fixed recipient for contact-form relays.
func ContactMailbox() string {
	return os.Getenv("CONTACT_MAILBOX")
}

func newDialer() *mail.Dialer {
	d := mail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)

	// Force STARTTLS on port 587 (Gmail/Office365 friendly).
	d.StartTLSPolicy = mail.MandatoryStartTLS

	// ServerName must match the SMTP hostname; InsecureSkipVerify is dev-only.
	d.TLSConfig = &tls.Config{
		ServerName:         smtpHost,
		InsecureSkipVerify: skipTLSVerify,
	}
	return d
}

func SendMail(to []string, subject, html string) error {
	return SendMailWithAttachment(to, subject, html, "", nil)
}

// SendMailWithAttachment sends an HTML mail with an optional attachment
// (used for calendar invites). attachment may be nil.
func SendMailWithAttachment(to []string, subject, html, attachName string, attachment []byte) error {
	if len(to) == 0 {
		return nil
	}
	if smtpHost == "" || smtpFrom == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", smtpFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if attachName != "" && attachment != nil {
		m.Attach(attachName, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	return newDialer().DialAndSend(m)
}
