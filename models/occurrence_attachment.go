package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OccurrenceAttachment is an evidence file (photo, document) attached to an
// occurrence. The file itself lives in object storage under StorageKey.
type OccurrenceAttachment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OccurrenceID string           `gorm:"type:uuid;not null;index" json:"occurrence_id"`
	Occurrence   *EventOccurrence `gorm:"foreignKey:OccurrenceID" json:"occurrence,omitempty"`

	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `gorm:"not null" json:"file_original_name"`
	StorageKey       string `gorm:"not null" json:"-"` // Not exposed in JSON for security
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `json:"mime_type,omitempty"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *OccurrenceAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// GetDownloadURL returns a safe download URL for this attachment
func (a *OccurrenceAttachment) GetDownloadURL() string {
	return "/api/occurrences/" + a.OccurrenceID + "/attachments/" + a.ID + "/download"
}

// TableName specifies the table name
func (OccurrenceAttachment) TableName() string {
	return "occurrence_attachments"
}
