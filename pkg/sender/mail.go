package sender

import (
	"fmt"
	"net/smtp"
	"strings"

	"mdt/config"

	"github.com/jordan-wright/email"
)

// MailSender sends plain-text mail through an SMTP relay.
type MailSender struct {
	cfg config.Smtp
}

func NewMailSender(cfg config.Smtp) SendInter {
	return &MailSender{
		cfg: cfg,
	}
}

func (m *MailSender) Name() string {
	return "email"
}

func (m *MailSender) Send(msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipient")
	}

	e := m.build(msg)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	return e.Send(addr, auth)
}

func (m *MailSender) build(msg Message) *email.Email {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = msg.To
	e.Subject = msg.Title

	var b strings.Builder
	b.WriteString(msg.Content)
	if len(msg.Fields) > 0 {
		b.WriteString("\n\n")
		for _, f := range msg.Fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
		}
	}
	e.Text = []byte(b.String())
	return e
}
