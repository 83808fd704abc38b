// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationType is a catalog entry for a distinct observation label.
// The ID is derived from the label text, so the same label always maps to
// the same row.
type ConsultationType struct {
	ID       uuid.UUID `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Excluded bool      `json:"excluded" yaml:"excluded"`
}

// Consultation is one scheduled appointment.
type Consultation struct {
	// ID is derived from PatientName and StartDate.
	ID          uuid.UUID `json:"id" yaml:"id"`
	PatientName string    `json:"patient_name" yaml:"patient_name"`
	StartDate   time.Time `json:"start_date" yaml:"start_date"`
	EndDate     time.Time `json:"end_date" yaml:"end_date"`
	Concluded   bool      `json:"concluded" yaml:"concluded"`

	// ConsultationTypeID references ConsultationType.ID.
	ConsultationTypeID uuid.UUID `json:"consultation_type_id" yaml:"consultation_type_id"`
}
