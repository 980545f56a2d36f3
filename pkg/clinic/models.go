package clinic

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Patient is a registered clinic patient. Rows are never updated in place;
// the only delete path is the bulk reset.
type Patient struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"not null"`
	Age           *int    `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Contact       *string `json:"contact,omitempty"`
	Address       *string `json:"address,omitempty"`
	Occupation    *string `json:"occupation,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Observation is one role-tagged clinical record against a patient. Role and
// data are immutable after creation; there is no update endpoint.
type Observation struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	PatientID uint              `json:"patient_id" gorm:"not null;index"`
	Role      Role              `json:"role" gorm:"not null"`
	Data      datatypes.JSONMap `json:"data" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null"`

	Patient *Patient `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

func (Observation) TableName() string {
	return "observations"
}

// CreatePatientRequest is the inbound registration payload. Only the name is
// mandatory.
type CreatePatientRequest struct {
	Name          string  `json:"name"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	Contact       *string `json:"contact"`
	Address       *string `json:"address"`
	Occupation    *string `json:"occupation"`
	MaritalStatus *string `json:"marital_status"`
}

// CreateObservationRequest carries the role tag and the raw role-shaped
// mapping; the validator normalizes the mapping before storage.
type CreateObservationRequest struct {
	PatientID uint            `json:"patient_id"`
	Role      Role            `json:"role"`
	Data      json.RawMessage `json:"data"`
}
