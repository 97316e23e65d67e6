package form

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	StatusSubmitted          SubmissionStatus = "submitted"
	StatusNotified           SubmissionStatus = "notified"
	StatusNotificationFailed SubmissionStatus = "notification_failed"
)

// Submission is a stored form response. Data holds the Envelope as jsonb.
type Submission struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	Reference         string           `json:"reference" gorm:"size:32;uniqueIndex"`
	FormID            string           `json:"formId" gorm:"size:100;index;not null"`
	FormTitle         string           `json:"formTitle" gorm:"size:255"`
	CreatedBy         *uint            `json:"createdBy" gorm:"index"`
	Data              datatypes.JSON   `json:"data" gorm:"type:jsonb" swaggertype:"object"`
	Status            SubmissionStatus `json:"status" gorm:"size:32;default:'submitted'"`
	NotificationError string           `json:"notificationError,omitempty" gorm:"type:text"`
	SubmittedAt       time.Time        `json:"submittedAt"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (Submission) TableName() string { return "form_submissions" }

// Envelope is the JSON document stored in Submission.Data.
type Envelope struct {
	FormID      string         `json:"formId"`
	FormTitle   string         `json:"formTitle"`
	Responses   map[string]any `json:"responses"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Envelope decodes Data.
func (s *Submission) Envelope() (Envelope, error) {
	var env Envelope
	if len(s.Data) == 0 {
		return env, nil
	}
	err := json.Unmarshal(s.Data, &env)
	return env, err
}

// NewEnvelope encodes an envelope for Submission.Data.
func NewEnvelope(env Envelope) (datatypes.JSON, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
