package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/extract"
	"github.com/dgallion1/bddgen/internal/stepdef"
)

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	About  string `json:"description"`
}

var endpoints = []endpoint{
	{http.MethodGet, "/health", "Liveness probe"},
	{http.MethodGet, "/api/stats", "Conversion statistics for the current window"},
	{http.MethodPost, "/api/analyze", "Score an uploaded document against each document type"},
	{http.MethodPost, "/api/convert-to-feature", "Convert one document to a feature file"},
	{http.MethodPost, "/api/convert", "Convert several documents of one type"},
	{http.MethodPost, "/api/validate", "Check that a document parses as the given type"},
	{http.MethodPost, "/api/generate-feature", "Render a feature file from structural data"},
	{http.MethodPost, "/api/generate-steps", "Generate step definition stubs for a feature"},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	languages := make(map[string][]string)
	for _, lang := range stepdef.Languages() {
		languages[lang] = stepdef.Frameworks(lang)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":              "bddgen",
		"endpoints":         endpoints,
		"document_types":    doctype.Literals(),
		"supported_formats": extract.Extensions(),
		"languages":         languages,
		"max_upload_bytes":  s.cfg.MaxUploadBytes,
		"default_language":  s.cfg.DefaultLanguage,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"window": s.cfg.StatsWindow.String(),
		"stats":  s.pipeline.Stats(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
