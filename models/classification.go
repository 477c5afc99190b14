package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncidentClassification labels the kind of incident reported in a response
type IncidentClassification struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Classification string `gorm:"size:255;not null;index" json:"classification"`
}

// BeforeCreate hook to generate UUID
func (c *IncidentClassification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (IncidentClassification) TableName() string {
	return "incident_classifications"
}

// OccurrenceClassification labels the severity of an occurrence; together
// with the damage classification it determines the response deadline
type OccurrenceClassification struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Classification string `gorm:"size:255;not null;index" json:"classification"`
}

// BeforeCreate hook to generate UUID
func (c *OccurrenceClassification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (OccurrenceClassification) TableName() string {
	return "occurrence_classifications"
}

// DamageClassification labels the harm caused to the patient
type DamageClassification struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Classification string `gorm:"size:255;not null;index" json:"classification"`
}

// BeforeCreate hook to generate UUID
func (c *DamageClassification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (DamageClassification) TableName() string {
	return "damage_classifications"
}
