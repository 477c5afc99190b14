package jobs

import (
	"incident_flow_app_go/config"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"log"
	"time"

	"gorm.io/gorm"
)

// DeadlineReminderWindow is how far ahead of the deadline a reminder fires
const DeadlineReminderWindow = 48 * time.Hour

// SendDeadlineReminders emails responders whose unresolved responses are
// approaching or past their deadline. Each response is reminded once.
func SendDeadlineReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting deadline reminder job...")

	now := time.Now()
	windowEnd := now.Add(DeadlineReminderWindow)

	var responses []models.ResponseOccurrence

	// Unresolved responses with a deadline inside the window (or already
	// past) that have not been reminded yet
	err := database.Preload("Owner").
		Where("resolved = ?", false).
		Where("deadline_response IS NOT NULL AND deadline_response <= ?", windowEnd).
		Where("reminder_sent_at IS NULL").
		Find(&responses).Error

	if err != nil {
		log.Printf("Error fetching responses for reminders: %v", err)
		return
	}

	log.Printf("Found %d responses to remind", len(responses))

	for _, response := range responses {
		if response.Owner == nil || response.DeadlineResponse == nil {
			continue
		}

		overdue := response.IsOverdue(now)
		email := services.BuildDeadlineReminderEmail(response.Owner.Email, *response.DeadlineResponse, overdue)

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for response %s: %v", response.ID, err)
			continue
		}

		sentAt := time.Now()
		database.Model(&response).Update("reminder_sent_at", sentAt)
		log.Printf("Sent deadline reminder for response %s", response.ID)
	}

	log.Println("Deadline reminder job completed")
}
