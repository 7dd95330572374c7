package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	cfgpkg "github.com/fatflowers/console/pkg/config"
)

func TestLog_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLog(zap.New(core).Sugar())

	require.NoError(t, s.Send(context.Background(), &Message{To: []string{"a@b.test"}, Subject: "Invoice", HTML: "<p>hi</p>"}))
	require.Equal(t, 1, logs.FilterMessage("mail not sent, smtp disabled").Len())

	require.ErrorIs(t, s.Send(context.Background(), &Message{}), ErrNoRecipient)
	require.ErrorIs(t, s.Send(context.Background(), &Message{To: []string{" "}}), ErrNoRecipient)
}

func TestSMTP_MessageValidation(t *testing.T) {
	s := NewSMTP(cfgpkg.MailConfig{Host: "smtp.test", Port: 587, From: "billing@console.test"})

	msg, err := s.message(&Message{To: []string{"owner@acme.test"}, ReplyTo: "support@console.test", Subject: "Invoice", HTML: "<b>x</b>"})
	require.NoError(t, err)
	require.NotNil(t, msg)

	_, err = s.message(&Message{To: []string{"not an address"}})
	require.Error(t, err)

	bad := NewSMTP(cfgpkg.MailConfig{Host: "smtp.test", From: "nope"})
	_, err = bad.message(&Message{To: []string{"owner@acme.test"}})
	require.Error(t, err)

	require.ErrorIs(t, s.Send(context.Background(), &Message{}), ErrNoRecipient)
}

func TestNew_FallsBackToLog(t *testing.T) {
	s := New(zap.NewNop().Sugar(), &cfgpkg.Config{})
	require.IsType(t, &Log{}, s)

	s = New(zap.NewNop().Sugar(), &cfgpkg.Config{Mail: cfgpkg.MailConfig{Host: "smtp.test"}})
	require.IsType(t, &SMTP{}, s)
}
