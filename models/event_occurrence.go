package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventOccurrence is the central record of an adverse event: who reported
// it, which sector is being notified, when it happened and what was done
// immediately afterwards.
type EventOccurrence struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PatientInvolved bool      `gorm:"not null;default:false;index" json:"patient_involved"`
	OccurrenceDate  time.Time `gorm:"not null;index" json:"occurrence_date"`
	OccurrenceTime  string    `gorm:"size:5;not null" json:"occurrence_time"` // HH:MM

	PatientID *string       `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Patient   *EventPatient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`

	ReportingDepartmentID string      `gorm:"type:uuid;not null;index" json:"reporting_department_id"`
	ReportingDepartment   *Department `gorm:"foreignKey:ReportingDepartmentID" json:"reporting_department,omitempty"`
	NotifiedDepartmentID  string      `gorm:"type:uuid;not null;index" json:"notified_department_id"`
	NotifiedDepartment    *Department `gorm:"foreignKey:NotifiedDepartmentID" json:"notified_department,omitempty"`

	DescriptionOccurrence string `gorm:"type:text;not null" json:"description_occurrence"`
	ImmediateAction       string `gorm:"type:text;not null" json:"immediate_action"`

	// Relationships
	Response    *ResponseOccurrence    `gorm:"foreignKey:OccurrenceID" json:"response,omitempty"`
	Attachments []OccurrenceAttachment `gorm:"foreignKey:OccurrenceID" json:"attachments,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *EventOccurrence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (EventOccurrence) TableName() string {
	return "event_occurrences"
}
