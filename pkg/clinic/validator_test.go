package clinic

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeRejectsUnknownRole(t *testing.T) {
	_, err := NormalizeObservationData(Role("Janitor"), json.RawMessage(`{"notes":"x"}`))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatal("unknown role must not be reported as a payload validation error")
	}
}

func TestNormalizeRequiresData(t *testing.T) {
	_, err := NormalizeObservationData(RoleNurse, nil)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for missing data, got %v", err)
	}

	// An explicit null must behave exactly like an absent data key.
	_, err = NormalizeObservationData(RoleNurse, json.RawMessage(`null`))
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for null data, got %v", err)
	}
}

func TestNormalizeRejectsOutOfRangeSpO2(t *testing.T) {
	raw := json.RawMessage(`{"vitals":{"spo2":150}}`)
	_, err := NormalizeObservationData(RoleNurse, raw)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for spo2=150, got %v", err)
	}

	raw = json.RawMessage(`{"vitals":{"spo2":-1}}`)
	if _, err := NormalizeObservationData(RoleNurse, raw); !IsValidationError(err) {
		t.Fatalf("expected validation error for spo2=-1, got %v", err)
	}

	raw = json.RawMessage(`{"vitals":{"spo2":100}}`)
	if _, err := NormalizeObservationData(RoleNurse, raw); err != nil {
		t.Fatalf("spo2=100 should be accepted, got %v", err)
	}
}

func TestNormalizeRejectsNegativeDuration(t *testing.T) {
	raw := json.RawMessage(`{"prescribed_therapy":"Abhyanga","duration_minutes":-5}`)
	_, err := NormalizeObservationData(RoleTherapist, raw)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for negative duration, got %v", err)
	}
}

func TestNormalizeNurseKeepsOnlyDeclaredFields(t *testing.T) {
	raw := json.RawMessage(`{
		"vitals": {"pulse": 72, "bp": "120/80", "spo2": 98},
		"appetite": "good",
		"red_flag": false,
		"favourite_colour": "blue"
	}`)

	data, err := NormalizeObservationData(RoleNurse, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := data["favourite_colour"]; ok {
		t.Fatal("unknown field should have been dropped")
	}
	if _, ok := data["bowel"]; ok {
		t.Fatal("absent optional field should be omitted")
	}
	if data["appetite"] != "good" {
		t.Fatalf("expected appetite to survive, got %v", data["appetite"])
	}
	if rf, ok := data["red_flag"].(bool); !ok || rf {
		t.Fatalf("expected red_flag=false to survive normalization, got %v", data["red_flag"])
	}

	vitals, ok := data["vitals"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested vitals mapping, got %T", data["vitals"])
	}
	if vitals["bp"] != "120/80" {
		t.Fatalf("expected bp to survive, got %v", vitals["bp"])
	}
	if _, ok := vitals["temp_f"]; ok {
		t.Fatal("absent vitals field should be omitted")
	}
}

func TestNormalizeDoctorExactKeys(t *testing.T) {
	raw := json.RawMessage(`{"nidana":"Vata imbalance","prognosis":"Good"}`)
	data, err := NormalizeObservationData(RoleDoctor, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("expected exactly two keys, got %d: %v", len(data), data)
	}
	if data["nidana"] != "Vata imbalance" || data["prognosis"] != "Good" {
		t.Fatalf("unexpected normalized data: %v", data)
	}
}

func TestNormalizeTherapistChecklist(t *testing.T) {
	raw := json.RawMessage(`{
		"prescribed_therapy": "Shirodhara",
		"duration_minutes": 45,
		"checklist": {"room_prepared": true, "oil_warmed": false}
	}`)
	data, err := NormalizeObservationData(RoleTherapist, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checklist, ok := data["checklist"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected checklist mapping, got %T", data["checklist"])
	}
	if checklist["room_prepared"] != true || checklist["oil_warmed"] != false {
		t.Fatalf("unexpected checklist: %v", checklist)
	}
}
