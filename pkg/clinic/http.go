package clinic

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/logger"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/patients", h.handleCreatePatient).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}", h.handleGetPatient).Methods(http.MethodGet)
	r.HandleFunc("/observations", h.handleCreateObservation).Methods(http.MethodPost)
	r.HandleFunc("/observations/{id}", h.handleGetObservation).Methods(http.MethodGet)
	r.HandleFunc("/reset", h.handleReset).Methods(http.MethodDelete)
}

func (h *HTTPHandler) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	patient, err := h.service.CreatePatient(r.Context(), req)
	if err != nil {
		if IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Log.WithError(err).Error("failed to create patient")
		writeError(w, http.StatusInternalServerError, "failed to create patient")
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (h *HTTPHandler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "patient")
	if !ok {
		return
	}

	patient, err := h.service.GetPatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		logger.Log.WithError(err).Error("failed to fetch patient")
		writeError(w, http.StatusInternalServerError, "failed to fetch patient")
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *HTTPHandler) handleCreateObservation(w http.ResponseWriter, r *http.Request) {
	var req CreateObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	obs, err := h.service.CreateObservation(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			writeError(w, http.StatusBadRequest, err.Error())
		case IsValidationError(err):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrPatientNotFound):
			writeError(w, http.StatusNotFound, "Patient not found")
		default:
			logger.Log.WithError(err).Error("failed to create observation")
			writeError(w, http.StatusInternalServerError, "failed to create observation")
		}
		return
	}
	writeJSON(w, http.StatusCreated, obs)
}

func (h *HTTPHandler) handleGetObservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "observation")
	if !ok {
		return
	}

	obs, err := h.service.GetObservation(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrObservationNotFound) {
			writeError(w, http.StatusNotFound, "Observation not found")
			return
		}
		logger.Log.WithError(err).Error("failed to fetch observation")
		writeError(w, http.StatusInternalServerError, "failed to fetch observation")
		return
	}
	writeJSON(w, http.StatusOK, obs)
}

func (h *HTTPHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		logger.Log.WithError(err).Error("failed to reset database")
		writeError(w, http.StatusInternalServerError, "failed to reset database")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Database reset"})
}

func pathID(w http.ResponseWriter, r *http.Request, kind string) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+kind+" id")
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
