package services

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SendEmail(t *testing.T) {
	provider := NewMockEmailProvider()
	svc := NewNotificationService(provider)

	require.NoError(t, svc.SendEmail("admin@example.com", "Hello", "body"))

	last, ok := provider.Last()
	require.True(t, ok)
	assert.Equal(t, SentEmail{To: "admin@example.com", Subject: "Hello", Body: "body"}, last)

	assert.Error(t, svc.SendEmail("not-an-address", "Hello", "body"))
	assert.Len(t, provider.Sent(), 1)
}

func TestNotificationService_NoProvider(t *testing.T) {
	svc := NewNotificationService(nil)
	assert.ErrorIs(t, svc.SendEmail("admin@example.com", "s", "b"), ErrEmailProviderNotConfigured)
}

func TestSMTPEmailProvider(t *testing.T) {
	p := NewSMTPEmailProvider("smtp.example.com", 587, "user", "pass", "noreply@example.com")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	p.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, p.SendEmail("admin@example.com", "Reset\r\nBcc: x@evil", "line1\nline2"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"admin@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: ResetBcc: x@evil\r\n")
	assert.True(t, strings.HasSuffix(msg, "line1\r\nline2"))

	p.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("dial failed") }
	assert.ErrorContains(t, p.SendEmail("admin@example.com", "s", "b"), "dial failed")
}
