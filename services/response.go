package services

import (
	"errors"
	"fmt"
	"incident_flow_app_go/models"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateResponse is returned when an occurrence already has a response
var ErrDuplicateResponse = errors.New("occurrence already has a response")

// ErrNotEscalated is returned when a manager note targets a response that
// was never sent to a manager
var ErrNotEscalated = errors.New("response was not sent to a manager")

// CreateResponseOccurrence stamps the deadline and persists the response.
// The occurrence/response relation is 1:1; a second response for the same
// occurrence trips the unique constraint and is reported as
// ErrDuplicateResponse so handlers can show a form error instead of a crash.
func CreateResponseOccurrence(db *gorm.DB, response *models.ResponseOccurrence) error {
	if err := StampDeadline(db, response); err != nil {
		return err
	}

	if err := db.Create(response).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateResponse
		}
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

// SaveResponseOccurrence persists changes to an existing response. The
// deadline is stamped only if still unset; an already-stamped deadline is
// never recomputed, even when the classifications changed.
func SaveResponseOccurrence(db *gorm.DB, response *models.ResponseOccurrence) error {
	if err := StampDeadline(db, response); err != nil {
		return err
	}

	if err := db.Save(response).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateResponse
		}
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

// GetResponseByID fetches a response with its occurrence and classifications
func GetResponseByID(db *gorm.DB, id string) (*models.ResponseOccurrence, error) {
	var response models.ResponseOccurrence
	err := db.Preload("Occurrence.Patient").
		Preload("Occurrence").
		Preload("OccurrenceDescription").
		Preload("Meta").
		Preload("IncidentClassification").
		Preload("OccurrenceClassification").
		Preload("DamageClassification").
		Preload("ManagerResponses").
		First(&response, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetResponseForOccurrence returns the response attached to an occurrence,
// or gorm.ErrRecordNotFound when the occurrence is still open
func GetResponseForOccurrence(db *gorm.DB, occurrenceID string) (*models.ResponseOccurrence, error) {
	var response models.ResponseOccurrence
	err := db.First(&response, "occurrence_id = ?", occurrenceID).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListResponsesSentToManager returns responses escalated with the
// send-manager flag, for the manager review queue
func ListResponsesSentToManager(db *gorm.DB, page, pageSize int) ([]models.ResponseOccurrence, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	base := db.Model(&models.ResponseOccurrence{}).Where("send_manager = ?", true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count escalated responses: %w", err)
	}

	var responses []models.ResponseOccurrence
	err := base.
		Preload("Occurrence").
		Preload("Owner").
		Order("created_at").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&responses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list escalated responses: %w", err)
	}

	return responses, total, nil
}

// CreateManagerResponse attaches a manager note to an escalated response.
// Only responses flagged send_manager accept manager notes.
func CreateManagerResponse(db *gorm.DB, managerResponse *models.ManagerResponse) error {
	var response models.ResponseOccurrence
	if err := db.First(&response, "id = ?", managerResponse.ResponseOccurrenceID).Error; err != nil {
		return fmt.Errorf("failed to load response: %w", err)
	}

	if !response.SendManager {
		return ErrNotEscalated
	}

	if err := db.Create(managerResponse).Error; err != nil {
		return fmt.Errorf("failed to create manager response: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes unique-constraint failures from both gorm's
// translated error and the raw sqlite message
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
