package services

import (
	"incident_flow_app_go/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	email := &Email{
		To:       []string{"destinataria@hospital.org"},
		Subject:  "Teste",
		TextBody: "Corpo do email",
	}
	// Test mode logs to console and never touches the API
	assert.NoError(t, SendEmail(cfg, email))
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}

	email := &Email{
		To:       []string{"destinataria@hospital.org"},
		Subject:  "Teste",
		TextBody: "Corpo do email",
	}
	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestBuildOccurrenceNotificationEmail(t *testing.T) {
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	email := BuildOccurrenceNotificationEmail("gestor@hospital.org", "Farmácia", "UTI", date)

	assert.Equal(t, []string{"gestor@hospital.org"}, email.To)
	assert.Contains(t, email.Subject, "Farmácia")
	assert.Contains(t, email.TextBody, "UTI")
	assert.Contains(t, email.TextBody, "20/08/2026")
}

func TestBuildManagerEscalationEmail(t *testing.T) {
	deadline := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	email := BuildManagerEscalationEmail("gestora@hospital.org", "respondente", &deadline)

	assert.Contains(t, email.TextBody, "respondente")
	assert.Contains(t, email.TextBody, "10/09/2026")

	// Without a stamped deadline the reminder line is omitted
	noDeadline := BuildManagerEscalationEmail("gestora@hospital.org", "respondente", nil)
	assert.NotContains(t, noDeadline.TextBody, "Prazo")
}

func TestBuildDeadlineReminderEmail(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	upcoming := BuildDeadlineReminderEmail("resp@hospital.org", deadline, false)
	assert.Contains(t, upcoming.TextBody, "01/09/2026")

	overdue := BuildDeadlineReminderEmail("resp@hospital.org", deadline, true)
	assert.NotEqual(t, upcoming.Subject, overdue.Subject)
}
