package services

import (
	"fmt"
	"incident_flow_app_go/config"
	"log"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine; failures are logged, never
// surfaced to the request that triggered them
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send email to %v: %v", email.To, err)
		}
	}()
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Body: %s", truncate(email.TextBody, 500))
	log.Print(separator)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// BuildOccurrenceNotificationEmail notifies a department that a new
// occurrence names it as the notified sector
func BuildOccurrenceNotificationEmail(toEmail, departmentName, reportingDepartment string, occurrenceDate time.Time) *Email {
	subject := "Nova ocorrência notificada ao setor " + departmentName
	text := fmt.Sprintf(
		"O setor %s registrou uma ocorrência em %s e notificou o setor %s.\n\nAcesse o sistema para registrar a tratativa.",
		reportingDepartment,
		occurrenceDate.Format("02/01/2006"),
		departmentName,
	)
	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: text,
	}
}

// BuildManagerEscalationEmail notifies a manager that a response was
// escalated for their review
func BuildManagerEscalationEmail(toEmail, responderName string, deadline *time.Time) *Email {
	text := fmt.Sprintf("%s registrou uma tratativa e a encaminhou para análise do gestor.", responderName)
	if deadline != nil {
		text += fmt.Sprintf("\nPrazo da resposta: %s.", deadline.Format("02/01/2006"))
	}
	return &Email{
		To:       []string{toEmail},
		Subject:  "Tratativa encaminhada ao gestor",
		TextBody: text,
	}
}

// BuildDeadlineReminderEmail reminds a responder that an unresolved
// response is close to (or past) its deadline
func BuildDeadlineReminderEmail(toEmail string, deadline time.Time, overdue bool) *Email {
	subject := "Lembrete: prazo de tratativa se aproximando"
	text := fmt.Sprintf("A tratativa sob sua responsabilidade tem prazo até %s.", deadline.Format("02/01/2006"))
	if overdue {
		subject = "Atenção: prazo de tratativa vencido"
		text = fmt.Sprintf("A tratativa sob sua responsabilidade venceu em %s e segue não resolvida.", deadline.Format("02/01/2006"))
	}
	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: text,
	}
}
