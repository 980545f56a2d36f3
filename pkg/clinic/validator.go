package clinic

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// Role selects which field schema an observation's data must satisfy.
type Role string

const (
	RoleNurse     Role = "Nurse"
	RoleDoctor    Role = "Doctor"
	RoleTherapist Role = "Therapist"
)

var (
	// ErrInvalidRole indicates a role tag outside the three recognized
	// values; it is raised before any field inspection.
	ErrInvalidRole = errors.New("invalid role")

	errMissingData = errors.New("data payload required")
)

// ValidationError marks a payload that fails its role schema. It wraps the
// underlying reason so callers can distinguish it from storage errors.
type ValidationError struct {
	Role   Role
	reason error
}

func (e ValidationError) Error() string {
	if e.Role == "" {
		return e.reason.Error()
	}
	return fmt.Sprintf("invalid %s observation: %v", e.Role, e.reason)
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Vitals are the nurse-recorded measurements. SpO2 is a percentage and must
// stay within [0,100]; out-of-range values are rejected, never clamped.
type Vitals struct {
	Pulse    *int     `json:"pulse,omitempty"`
	BP       *string  `json:"bp,omitempty"`
	SpO2     *int     `json:"spo2,omitempty"`
	TempF    *float64 `json:"temp_f,omitempty"`
	HeightCM *float64 `json:"height_cm,omitempty"`
	WeightKG *float64 `json:"weight_kg,omitempty"`
	BMI      *float64 `json:"bmi,omitempty"`
}

func (v *Vitals) validate() error {
	if v == nil {
		return nil
	}
	if v.SpO2 != nil && (*v.SpO2 < 0 || *v.SpO2 > 100) {
		return fmt.Errorf("vitals.spo2 must be between 0 and 100, got %d", *v.SpO2)
	}
	if v.Pulse != nil && *v.Pulse < 0 {
		return fmt.Errorf("vitals.pulse must not be negative, got %d", *v.Pulse)
	}
	return nil
}

// NurseData is the ward-round record: vitals plus daily status fields.
type NurseData struct {
	DateTime     *string  `json:"date_time,omitempty"`
	Vitals       *Vitals  `json:"vitals,omitempty"`
	Bowel        *string  `json:"bowel,omitempty"`
	Bladder      *string  `json:"bladder,omitempty"`
	Appetite     *string  `json:"appetite,omitempty"`
	Sleep        *string  `json:"sleep,omitempty"`
	DailyNotes   *string  `json:"daily_notes,omitempty"`
	RedFlag      *bool    `json:"red_flag,omitempty"`
	RedFlagNotes []string `json:"red_flag_notes,omitempty"`
}

func (d NurseData) validate() error {
	return d.Vitals.validate()
}

// DoctorData holds the classical diagnostic workup.
type DoctorData struct {
	SelectedSamhita       *string  `json:"selected_samhita,omitempty"`
	SamhitaInterpretation *string  `json:"samhita_interpretation,omitempty"`
	Nidana                *string  `json:"nidana,omitempty"`
	Poorvaroopa           *string  `json:"poorvaroopa,omitempty"`
	Roopa                 *string  `json:"roopa,omitempty"`
	Upashaya              *string  `json:"upashaya,omitempty"`
	Anupashaya            *string  `json:"anupashaya,omitempty"`
	Samprapti             *string  `json:"samprapti,omitempty"`
	DifferentialDiagnosis []string `json:"differential_diagnosis,omitempty"`
	Prognosis             *string  `json:"prognosis,omitempty"`
	ChikitsaSutra         *string  `json:"chikitsa_sutra,omitempty"`
	ClassicalMedicines    []string `json:"classical_medicines,omitempty"`
	References            []string `json:"references,omitempty"`
}

func (d DoctorData) validate() error {
	return nil
}

// TherapistData records a single therapy session.
type TherapistData struct {
	PrescribedTherapy     *string         `json:"prescribed_therapy,omitempty"`
	OilUsed               *string         `json:"oil_used,omitempty"`
	DecoctionUsed         *string         `json:"decoction_used,omitempty"`
	TargetArea            *string         `json:"target_area,omitempty"`
	Pressure              *string         `json:"pressure,omitempty"`
	Speed                 *string         `json:"speed,omitempty"`
	Temperature           *string         `json:"temperature,omitempty"`
	DurationMinutes       *int            `json:"duration_minutes,omitempty"`
	Checklist             map[string]bool `json:"checklist,omitempty"`
	AftercareInstructions *string         `json:"aftercare_instructions,omitempty"`
	SessionNotes          *string         `json:"session_notes,omitempty"`
}

func (d TherapistData) validate() error {
	if d.DurationMinutes != nil && *d.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes must not be negative, got %d", *d.DurationMinutes)
	}
	return nil
}

// NormalizeObservationData decodes the raw mapping into the role's schema and
// re-encodes it so only the role's declared fields survive, with absent
// fields omitted. Unknown fields are dropped rather than rejected. The role
// dispatch is exhaustive over the three recognized tags.
func NormalizeObservationData(role Role, raw json.RawMessage) (datatypes.JSONMap, error) {
	switch role {
	case RoleNurse:
		var d NurseData
		return normalize(role, raw, &d, func() error { return d.validate() })
	case RoleDoctor:
		var d DoctorData
		return normalize(role, raw, &d, func() error { return d.validate() })
	case RoleTherapist:
		var d TherapistData
		return normalize(role, raw, &d, func() error { return d.validate() })
	default:
		return nil, fmt.Errorf("role %q: %w", string(role), ErrInvalidRole)
	}
}

func normalize(role Role, raw json.RawMessage, shape interface{}, validate func() error) (datatypes.JSONMap, error) {
	// A JSON null is the same as an absent data key; unmarshalling it into
	// the shape would silently produce an empty observation.
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ValidationError{Role: role, reason: errMissingData}
	}
	if err := json.Unmarshal(raw, shape); err != nil {
		return nil, ValidationError{Role: role, reason: err}
	}
	if err := validate(); err != nil {
		return nil, ValidationError{Role: role, reason: err}
	}

	encoded, err := json.Marshal(shape)
	if err != nil {
		return nil, ValidationError{Role: role, reason: err}
	}
	var normalized map[string]interface{}
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, ValidationError{Role: role, reason: err}
	}
	return datatypes.JSONMap(normalized), nil
}
