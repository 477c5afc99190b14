package services

import (
	"fmt"
	"incident_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateOccurrence persists a new occurrence, creating the involved patient
// in the same transaction when one is supplied. A patient record is only
// attached when the occurrence flags a patient as involved.
func CreateOccurrence(db *gorm.DB, occurrence *models.EventOccurrence, patient *models.EventPatient) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if occurrence.PatientInvolved {
			if patient == nil {
				return fmt.Errorf("patient data is required when a patient is involved")
			}
			if err := tx.Create(patient).Error; err != nil {
				return fmt.Errorf("failed to create patient: %w", err)
			}
			occurrence.PatientID = &patient.ID
		} else {
			occurrence.PatientID = nil
		}

		if err := tx.Create(occurrence).Error; err != nil {
			return fmt.Errorf("failed to create occurrence: %w", err)
		}
		return nil
	})
}

// GetOccurrenceByID fetches an occurrence with its patient, departments and
// response preloaded
func GetOccurrenceByID(db *gorm.DB, id string) (*models.EventOccurrence, error) {
	var occurrence models.EventOccurrence
	err := db.Preload("Patient").
		Preload("ReportingDepartment").
		Preload("NotifiedDepartment").
		Preload("Response").
		Preload("Attachments").
		First(&occurrence, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &occurrence, nil
}

// ListOccurrencesNeedingResponse returns the occurrences that have no
// response yet, paginated. page is 1-based.
func ListOccurrencesNeedingResponse(db *gorm.DB, page, pageSize int) ([]models.EventOccurrence, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	base := db.Model(&models.EventOccurrence{}).
		Joins("LEFT JOIN response_occurrences ON response_occurrences.occurrence_id = event_occurrences.id").
		Where("response_occurrences.id IS NULL")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count occurrences: %w", err)
	}

	var occurrences []models.EventOccurrence
	err := base.
		Preload("ReportingDepartment").
		Preload("NotifiedDepartment").
		Order("event_occurrences.created_at").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&occurrences).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list occurrences: %w", err)
	}

	return occurrences, total, nil
}

// ListOccurrences returns all non-deleted occurrences, newest last, paginated
func ListOccurrences(db *gorm.DB, page, pageSize int) ([]models.EventOccurrence, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	var total int64
	if err := db.Model(&models.EventOccurrence{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count occurrences: %w", err)
	}

	var occurrences []models.EventOccurrence
	err := db.Preload("ReportingDepartment").
		Preload("NotifiedDepartment").
		Preload("Response").
		Order("created_at").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&occurrences).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list occurrences: %w", err)
	}

	return occurrences, total, nil
}

// SoftDeleteOccurrence marks an occurrence as deleted; the row stays
// reachable through Unscoped for administrative recovery
func SoftDeleteOccurrence(db *gorm.DB, id string) error {
	result := db.Delete(&models.EventOccurrence{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete occurrence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RestoreOccurrence clears the soft-delete mark on an occurrence
func RestoreOccurrence(db *gorm.DB, id string) error {
	result := db.Unscoped().Model(&models.EventOccurrence{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return fmt.Errorf("failed to restore occurrence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
