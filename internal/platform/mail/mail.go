// Package mail delivers HTML email over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
)

var ErrNoRecipient = errors.New("mail has no recipient")

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

func (m *Message) validate() error {
	if m == nil || len(m.To) == 0 {
		return ErrNoRecipient
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipient
		}
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, m *Message) error
}

// SMTP sends through a relay, opening one connection per message.
type SMTP struct {
	cfg cfgpkg.MailConfig
}

func NewSMTP(cfg cfgpkg.MailConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) message(m *Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.HTML)
	return msg, nil
}

func (s *SMTP) Send(ctx context.Context, m *Message) error {
	if err := m.validate(); err != nil {
		return err
	}
	msg, err := s.message(m)
	if err != nil {
		return err
	}
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// Log writes messages to the logger instead of sending them.
type Log struct {
	log *zap.SugaredLogger
}

func NewLog(log *zap.SugaredLogger) *Log {
	return &Log{log: log}
}

func (l *Log) Send(ctx context.Context, m *Message) error {
	if err := m.validate(); err != nil {
		return err
	}
	logctx.FromCtx(ctx, l.log).Infow("mail not sent, smtp disabled", "to", m.To, "subject", m.Subject, "bytes", len(m.HTML))
	return nil
}

func New(l *zap.SugaredLogger, cfg *cfgpkg.Config) Sender {
	if cfg.Mail.Host == "" {
		l.Infow("mail.host not set, emails are logged only")
		return NewLog(l)
	}
	return NewSMTP(cfg.Mail)
}

var Module = fx.Options(
	fx.Provide(New),
)
