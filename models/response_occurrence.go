package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResponseOccurrence is the remediation record ("tratativa") answering an
// occurrence. Exactly one response may exist per occurrence. The response
// deadline is stamped from the classification severity at first save and
// never recomputed.
type ResponseOccurrence struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OccurrenceID string           `gorm:"type:uuid;not null;uniqueIndex" json:"occurrence_id"`
	Occurrence   *EventOccurrence `gorm:"foreignKey:OccurrenceID" json:"occurrence,omitempty"`

	OccurrenceDescriptionID string                 `gorm:"type:uuid;not null;index" json:"occurrence_description_id"`
	OccurrenceDescription   *OccurrenceDescription `gorm:"foreignKey:OccurrenceDescriptionID" json:"occurrence_description,omitempty"`

	MetaID string `gorm:"type:uuid;not null;index" json:"meta_id"`
	Meta   *Meta  `gorm:"foreignKey:MetaID" json:"meta,omitempty"`

	Description      string     `gorm:"type:text;not null" json:"description"`
	DeadlineResponse *time.Time `json:"deadline_response"`
	ReminderSentAt   *time.Time `json:"reminder_sent_at,omitempty"`

	Resolved           bool `gorm:"not null;default:false" json:"resolved"`
	SendManager        bool `gorm:"not null;default:false;index" json:"send_manager"`
	EventInvestigation bool `gorm:"not null;default:false;index" json:"event_investigation"`

	IncidentClassificationID   string                    `gorm:"type:uuid;not null;index" json:"incident_classification_id"`
	IncidentClassification     *IncidentClassification   `gorm:"foreignKey:IncidentClassificationID" json:"incident_classification,omitempty"`
	OccurrenceClassificationID string                    `gorm:"type:uuid;not null;index" json:"occurrence_classification_id"`
	OccurrenceClassification   *OccurrenceClassification `gorm:"foreignKey:OccurrenceClassificationID" json:"occurrence_classification,omitempty"`
	DamageClassificationID     string                    `gorm:"type:uuid;not null;index" json:"damage_classification_id"`
	DamageClassification       *DamageClassification     `gorm:"foreignKey:DamageClassificationID" json:"damage_classification,omitempty"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	// Relationships
	ManagerResponses []ManagerResponse `gorm:"foreignKey:ResponseOccurrenceID" json:"manager_responses,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *ResponseOccurrence) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// IsOverdue reports whether the response deadline has passed without resolution
func (r *ResponseOccurrence) IsOverdue(now time.Time) bool {
	return r.DeadlineResponse != nil && !r.Resolved && now.After(*r.DeadlineResponse)
}

// TableName specifies the table name
func (ResponseOccurrence) TableName() string {
	return "response_occurrences"
}
