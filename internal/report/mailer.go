package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	netmail "net/mail"

	"github.com/wneessen/go-mail"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a plain-text email with at most one attachment.
type Message struct {
	Subject    string
	Body       string
	Attachment *Attachment
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type MailConfig struct {
	Host     string
	Port     int
	Username string // also the From address
	Password string
	To       string // one address or a comma-separated list
	// Auth defaults to auto-discovery: the strongest mechanism the relay
	// advertises after STARTTLS (e.g. LOGIN-only relays).
	Auth mail.SMTPAuthType
}

// Mailer delivers through an SMTP relay that must offer STARTTLS.
type Mailer struct {
	cfg MailConfig
}

func NewMailer(cfg MailConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("smtp username/password is required")
	}
	if cfg.To == "" {
		return nil, errors.New("recipient is required")
	}
	if cfg.Auth == "" {
		cfg.Auth = mail.SMTPAuthAutoDiscover
	}
	return &Mailer{cfg: cfg}, nil
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	gm, err := m.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	return nil
}

func (m *Mailer) clientOptions() []mail.Option {
	return []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(m.cfg.Auth),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	}
}

func (m *Mailer) buildMessage(msg Message) (*mail.Msg, error) {
	gm := mail.NewMsg()
	if err := gm.From(m.cfg.Username); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	rcpts, err := recipients(m.cfg.To)
	if err != nil {
		return nil, err
	}
	if err := gm.To(rcpts...); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(mail.TypeTextPlain, msg.Body)

	if a := msg.Attachment; a != nil {
		ct := a.ContentType
		if ct == "" {
			ct = CSVContentType
		}
		if err := gm.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(ct))); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	gm.SetGenHeader(mail.HeaderXMailer, "jobdigest")
	gm.SetDate()
	gm.SetMessageID()
	return gm, nil
}

func recipients(list string) ([]string, error) {
	addrs, err := netmail.ParseAddressList(list)
	if err != nil {
		return nil, fmt.Errorf("parse recipients %q: %w", list, err)
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out, nil
}
