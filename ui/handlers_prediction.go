package ui

import (
	"encoding/json"
	"net/http"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
)

// handleRoot returns the service identity message
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Lung Cancer Prediction API v1",
	})
}

// handlePredict scores a survey payload for the authenticated caller and
// persists the attributed record
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var input models.PatientInput
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&input); err != nil {
		s.writeError(w, errors.ValidationError("malformed JSON body"))
		return
	}

	result, err := s.predictions.Assess(r.Context(), currentUser(r), &input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"prediction_result": result.Assessment,
		"patient_id":        result.Record.ID.String(),
	})
}

// handleDashboard returns the caller's assessment aggregate
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.predictions.Dashboard(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}
