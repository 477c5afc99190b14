package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPatient holds the details of a patient involved in an occurrence.
// Created at most once per occurrence, only when the occurrence flags a
// patient as involved.
type EventPatient struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PatientName    string    `gorm:"size:225;not null;index" json:"patient_name"`
	Attendance     int       `gorm:"not null;index" json:"attendance"`
	Record         int       `gorm:"not null;index" json:"record"`
	BirthDate      time.Time `gorm:"not null" json:"birth_date"`
	InternmentDate time.Time `gorm:"not null" json:"internment_date"`

	GenderID *string `gorm:"type:uuid;index" json:"gender_id,omitempty"`
	Gender   *Gender `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
	RaceID   *string `gorm:"type:uuid;index" json:"race_id,omitempty"`
	Race     *Race   `gorm:"foreignKey:RaceID" json:"race,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *EventPatient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (EventPatient) TableName() string {
	return "event_patients"
}
