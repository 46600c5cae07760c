package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type generateFeatureRequest struct {
	DocType     string          `json:"doc_type" validate:"required"`
	FeatureName string          `json:"feature_name" validate:"max=200"`
	Structure   json.RawMessage `json:"structure" validate:"required"`
}

type generateStepsRequest struct {
	FeatureContent      string `json:"feature_content" validate:"required"`
	ProgrammingLanguage string `json:"programming_language" validate:"omitempty,alpha"`
	Framework           string `json:"framework" validate:"omitempty,alphanum"`
}

func (s *Server) handleGenerateFeature(w http.ResponseWriter, r *http.Request) {
	var req generateFeatureRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	feature, err := s.pipeline.GenerateFeature(req.DocType, req.Structure, req.FeatureName)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"doc_type":        req.DocType,
		"feature_content": feature,
	})
}

func (s *Server) handleGenerateSteps(w http.ResponseWriter, r *http.Request) {
	var req generateStepsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	res, err := s.pipeline.GenerateSteps(req.FeatureContent, req.ProgrammingLanguage, req.Framework)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeJSON reads a size-limited JSON body into v and validates it. It writes
// the error response itself and reports whether the handler may continue.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", mbe.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := s.validator.Struct(v); err != nil {
		jsonError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

// validationMessage reports the first failed field from validator errors.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
