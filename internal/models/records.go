package models

import (
	"time"

	"gorm.io/datatypes"
)

// TimestampLayout is ISO-8601 with microseconds and a numeric UTC offset
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Symptom is one reported set of symptoms
type Symptom struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	UserID   uint           `gorm:"index;not null" json:"user_id"`
	Datetime time.Time      `gorm:"index;not null" json:"datetime"`
	Symptoms datatypes.JSON `json:"symptoms"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Symptom model
func (Symptom) TableName() string {
	return "symptoms"
}

// SymptomResponse is the response structure for a symptom record
type SymptomResponse struct {
	ID       uint           `json:"id"`
	UserID   uint           `json:"user_id"`
	Datetime string         `json:"datetime"`
	Symptoms datatypes.JSON `json:"symptoms"`
}

// ToResponse builds the response structure
func (s *Symptom) ToResponse() SymptomResponse {
	return SymptomResponse{
		ID:       s.ID,
		UserID:   s.UserID,
		Datetime: FormatTimestamp(s.Datetime),
		Symptoms: s.Symptoms,
	}
}

// Prediction is one outcome returned by the external predictor
type Prediction struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Datetime time.Time `gorm:"index;not null" json:"datetime"`
	Result   string    `gorm:"size:1000" json:"result"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Prediction model
func (Prediction) TableName() string {
	return "predict1_results"
}

// PredictionResponse is the response structure for a prediction record
type PredictionResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Datetime string `json:"datetime"`
	Result   string `json:"result"`
}

// ToResponse builds the response structure
func (p *Prediction) ToResponse() PredictionResponse {
	return PredictionResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Datetime: FormatTimestamp(p.Datetime),
		Result:   p.Result,
	}
}

// MentalHealthNote is a free-text note.
// No foreign key constraint: notes may outlive their user (see retention config).
type MentalHealthNote struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Datetime time.Time `gorm:"index;not null" json:"datetime"`
	Notes    string    `gorm:"type:text" json:"notes"`
}

// TableName specifies the table name for MentalHealthNote model
func (MentalHealthNote) TableName() string {
	return "mental_health_notes"
}

// MentalHealthNoteResponse is the response structure for a note
type MentalHealthNoteResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Datetime string `json:"datetime"`
	Notes    string `json:"notes"`
}

// ToResponse builds the response structure
func (n *MentalHealthNote) ToResponse() MentalHealthNoteResponse {
	return MentalHealthNoteResponse{
		ID:       n.ID,
		UserID:   n.UserID,
		Datetime: FormatTimestamp(n.Datetime),
		Notes:    n.Notes,
	}
}

// SymptomResponses converts a slice of records
func SymptomResponses(records []Symptom) []SymptomResponse {
	out := make([]SymptomResponse, len(records))
	for i := range records {
		out[i] = records[i].ToResponse()
	}
	return out
}

// PredictionResponses converts a slice of records
func PredictionResponses(records []Prediction) []PredictionResponse {
	out := make([]PredictionResponse, len(records))
	for i := range records {
		out[i] = records[i].ToResponse()
	}
	return out
}

// MentalHealthNoteResponses converts a slice of records
func MentalHealthNoteResponses(records []MentalHealthNote) []MentalHealthNoteResponse {
	out := make([]MentalHealthNoteResponse, len(records))
	for i := range records {
		out[i] = records[i].ToResponse()
	}
	return out
}
