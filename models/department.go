package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrBlankDepartmentName is returned when a department is saved without a name
var ErrBlankDepartmentName = errors.New("department name cannot be blank")

// Department is an organizational unit. It owns occurrences (as reporting or
// notified sector) and scopes record visibility for its members.
type Department struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string  `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description *string `gorm:"size:255" json:"description,omitempty"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave rejects blank names even if handler validation was bypassed
func (d *Department) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrBlankDepartmentName
	}
	return nil
}

// TableName specifies the table name
func (Department) TableName() string {
	return "departments"
}
