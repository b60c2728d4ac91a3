package mailbox

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkarpov/claimsift/internal/model"
)

// Courier delivers outbound mail: finished case reports and error notices.
type Courier interface {
	DeliverReport(report string, item model.InboundItem, attachmentCount int) error
	DeliverErrorNotice(item model.InboundItem, processErr error) error
}

// SMTPCourier sends mail over SMTP with STARTTLS and plain auth.
type SMTPCourier struct {
	cfg model.SMTPConfig

	// now is injectable for tests.
	now func() time.Time
}

// NewSMTPCourier creates a courier from the SMTP configuration.
func NewSMTPCourier(cfg model.SMTPConfig) *SMTPCourier {
	return &SMTPCourier{cfg: cfg, now: time.Now}
}

// DeliverReport sends the finished case report to the configured recipient.
func (c *SMTPCourier) DeliverReport(report string, item model.InboundItem, attachmentCount int) error {
	subject := "Legal Case Analysis: " + item.Subject

	body := fmt.Sprintf(`Legal Case Analysis Report
==========================

This is an automated analysis of the legal case email received from %s.

Original Email Details:
- Subject: %s
- Sender: %s
- Date: %s
- PDF Attachments: %d

%s

---
Generated at: %s
`, item.Sender, item.Subject, item.Sender, item.Date,
		attachmentCount, report, c.now().UTC().Format("2006-01-02 15:04:05"))

	return c.send(subject, body)
}

// DeliverErrorNotice tells the recipient an item failed and needs manual
// review.
func (c *SMTPCourier) DeliverErrorNotice(item model.InboundItem, processErr error) error {
	subject := "Legal Case Processing Error: " + item.Subject

	body := fmt.Sprintf(`Legal Case Processing Error
===========================

An error occurred while processing the legal case email:

Original Email:
- Subject: %s
- Sender: %s

Error Details:
%v

Please review the email manually or check the system logs.

Generated at: %s
`, item.Subject, item.Sender, processErr, c.now().UTC().Format("2006-01-02 15:04:05"))

	return c.send(subject, body)
}

func (c *SMTPCourier) send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Server, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Sender, c.cfg.Password, c.cfg.Server)

	msg := buildMessage(c.cfg.Sender, c.cfg.Recipient, subject, body)

	if err := smtp.SendMail(addr, auth, c.cfg.Sender, []string{c.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", c.cfg.Recipient, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// sanitizeHeader strips CR/LF to prevent header injection from inbound
// subjects.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
