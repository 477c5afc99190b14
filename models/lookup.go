package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender lookup for patient records
type Gender struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:50;not null" json:"name"`
}

func (g *Gender) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Gender) TableName() string {
	return "genders"
}

// Race lookup for patient records
type Race struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:50;not null" json:"name"`
}

func (r *Race) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Race) TableName() string {
	return "races"
}

// Meta is a regulatory-goal tag attached to a response
type Meta struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:255;not null;index" json:"name"`

	OwnerID string `gorm:"type:uuid;not null" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (m *Meta) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Meta) TableName() string {
	return "metas"
}

// OccurrenceDescription is a fixed catalog entry categorizing what happened
type OccurrenceDescription struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:255;not null;index" json:"name"`

	OwnerID string `gorm:"type:uuid;not null" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (o *OccurrenceDescription) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (OccurrenceDescription) TableName() string {
	return "occurrence_descriptions"
}
