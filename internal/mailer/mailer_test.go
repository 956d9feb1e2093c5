package mailer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/lineup-service/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMailer_WithoutHostDoesNotSend(t *testing.T) {
	m := New(config.SMTPConfig{}, discardLogger())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not send")
		return nil
	}

	assert.False(t, m.Enabled())
	assert.NoError(t, m.SendEmail("a@x.com", "subject", "body"))
}

func TestMailer_WithoutHostKeepsCodeOutOfInfoLogs(t *testing.T) {
	var buf bytes.Buffer
	m := New(config.SMTPConfig{}, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	require.NoError(t, m.SendEmail("a@x.com", "Your verification code", "Your verification code is 482913."))
	assert.Contains(t, buf.String(), "a@x.com")
	assert.NotContains(t, buf.String(), "482913")

	buf.Reset()
	debug := New(config.SMTPConfig{}, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, debug.SendEmail("a@x.com", "Your verification code", "Your verification code is 482913."))
	assert.Contains(t, buf.String(), "482913")
}

func TestSMTPMailer_SendEmail(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.local", Port: "2525", From: "noreply@x.com", Username: "u", Password: "p"}, discardLogger())

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg, gotAuth = addr, to, string(msg), a
		return nil
	}

	require.NoError(t, m.SendEmail("a@x.com", "Your verification code", "123456"))
	assert.Equal(t, "smtp.local:2525", gotAddr)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Your verification code\r\n")
	assert.Contains(t, gotMsg, "123456")
	assert.NotNil(t, gotAuth)
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.local", Port: "25"}, discardLogger())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.SendEmail("a@x.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.local", Port: "25"}, discardLogger())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not send")
		return nil
	}

	assert.Error(t, m.SendEmail("a@x.com\r\nBcc: evil@x.com", "s", "b"))
}
