package services

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
)

var ErrEmailProviderNotConfigured = errors.New("email provider not configured")

// NotificationService handles sending notifications by email
type NotificationService interface {
	SendEmail(email, subject, message string) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	emailProvider EmailProvider
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(email, subject, message string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(emailProvider EmailProvider) NotificationService {
	return &NotificationServiceImpl{emailProvider: emailProvider}
}

// SendEmail sends an email to the specified email address
func (s *NotificationServiceImpl) SendEmail(email, subject, message string) error {
	if s.emailProvider == nil {
		return ErrEmailProviderNotConfigured
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address %q: %w", email, err)
	}

	return s.emailProvider.SendEmail(email, subject, message)
}

// SentEmail is a message captured by MockEmailProvider
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockEmailProvider logs messages instead of delivering them and keeps them for inspection
type MockEmailProvider struct {
	mu   sync.Mutex
	sent []SentEmail
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(email, subject, message string) error {
	p.mu.Lock()
	p.sent = append(p.sent, SentEmail{To: email, Subject: subject, Body: message})
	p.mu.Unlock()

	log.Printf("Email sent to %s [%s]", email, subject)
	return nil
}

// Sent returns a copy of every message sent so far
func (p *MockEmailProvider) Sent() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SentEmail(nil), p.sent...)
}

// Last returns the most recent message, if any
func (p *MockEmailProvider) Last() (SentEmail, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sent) == 0 {
		return SentEmail{}, false
	}
	return p.sent[len(p.sent)-1], true
}

// SMTPEmailProvider delivers plain text mail through an SMTP relay
type SMTPEmailProvider struct {
	addr      string
	auth      smtp.Auth
	fromEmail string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPEmailProvider(host string, port int, username, password, fromEmail string) *SMTPEmailProvider {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPEmailProvider{
		addr:      net.JoinHostPort(host, strconv.Itoa(port)),
		auth:      auth,
		fromEmail: fromEmail,
		send:      smtp.SendMail,
	}
}

func (p *SMTPEmailProvider) SendEmail(email, subject, message string) error {
	if err := p.send(p.addr, p.auth, p.fromEmail, []string{email}, p.compose(email, subject, message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email, err)
	}
	return nil
}

func (p *SMTPEmailProvider) compose(to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + p.fromEmail + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + strings.NewReplacer("\r", "", "\n", "").Replace(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
