package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManagerResponse is a follow-up note from a manager on a response that was
// escalated with the send-manager flag. Append-only commentary thread.
type ManagerResponse struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ResponseOccurrenceID string              `gorm:"type:uuid;not null;index" json:"response_occurrence_id"`
	ResponseOccurrence   *ResponseOccurrence `gorm:"foreignKey:ResponseOccurrenceID" json:"response_occurrence,omitempty"`

	ResponseText string `gorm:"type:text;not null" json:"response_text"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// BeforeCreate hook to generate UUID
func (m *ManagerResponse) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (ManagerResponse) TableName() string {
	return "manager_responses"
}
