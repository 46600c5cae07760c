package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/pipeline"
)

var errFileTooLarge = errors.New("file exceeds max size")

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.parseUpload(w, r, s.cfg.MaxUploadBytes+1024*1024) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, ok := s.formFile(w, r)
	if !ok {
		return
	}
	a, err := s.pipeline.Analyze(filename, data)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleConvertToFeature(w http.ResponseWriter, r *http.Request) {
	if !s.parseUpload(w, r, s.cfg.MaxUploadBytes+1024*1024) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, ok := s.formFile(w, r)
	if !ok {
		return
	}
	conv, err := s.pipeline.Convert(r.Context(), pipeline.Request{
		Filename:    filename,
		Data:        data,
		DocType:     strings.TrimSpace(r.FormValue("doc_type")),
		FeatureName: strings.TrimSpace(r.FormValue("feature_name")),
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !s.parseUpload(w, r, s.cfg.MaxUploadBytes*10+10*1024*1024) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	literal := strings.TrimSpace(r.FormValue("doc_type"))
	if literal == "" {
		jsonError(w, "doc_type is required", http.StatusBadRequest)
		return
	}
	if _, err := doctype.Parse(literal); err != nil {
		s.respondError(w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	// Files that cannot be read keep their slot in the response.
	items := make([]pipeline.BatchItem, len(files))
	reqs := make([]pipeline.Request, 0, len(files))
	slots := make([]int, 0, len(files))
	for i, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		data, err := s.readFile(fh)
		if err != nil {
			items[i] = pipeline.BatchItem{
				Filename: filename,
				Status:   pipeline.StatusFailed,
				Error:    err.Error(),
			}
			continue
		}
		reqs = append(reqs, pipeline.Request{Filename: filename, Data: data, DocType: literal})
		slots = append(slots, i)
	}

	batch := s.pipeline.ConvertBatch(r.Context(), reqs)
	for j, item := range batch.Items {
		items[slots[j]] = item
	}
	batch.Failed += len(files) - len(reqs)
	batch.Items = items
	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !s.parseUpload(w, r, s.cfg.MaxUploadBytes+1024*1024) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	literal := strings.TrimSpace(r.FormValue("doc_type"))
	if literal == "" {
		jsonError(w, "doc_type is required", http.StatusBadRequest)
		return
	}
	filename, data, ok := s.formFile(w, r)
	if !ok {
		return
	}
	structure, err := s.pipeline.Validate(filename, data, literal)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":     true,
		"filename":  filename,
		"doc_type":  structure.Type(),
		"structure": structure,
	})
}

// parseUpload limits the body to limit bytes and parses the multipart form. It
// writes the error response itself and reports whether the handler may continue.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", mbe.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return "", nil, false
	}
	header := headers[0]
	data, err := s.readFile(header)
	if errors.Is(err, errFileTooLarge) {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	return sanitizeFilename(header.Filename), data, true
}

func (s *Server) readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errFileTooLarge, s.cfg.MaxUploadBytes)
	}
	return data, nil
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperr.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	jsonError(w, err.Error(), code)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" || name == "_" {
		name = "unnamed"
	}
	return name
}
