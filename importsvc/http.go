// CLAUDE:SUMMARY chi HTTP surface of the import service: multipart upload preview, run log listing, health.
package importsvc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hazyhaar/schedimport/importlog"
	"github.com/hazyhaar/schedimport/schedparse"
)

// multipartOverhead is the body allowance on top of the file size limit.
const multipartOverhead = 1 << 20

// Router returns the HTTP handler:
//
//	GET  /health
//	GET  /api/imports/types
//	POST /api/imports/{importType}      multipart "file", optional "kind"
//	GET  /api/imports/runs?limit=
//	GET  /api/imports/runs/{runID}
func (s *Service) Router() http.Handler {
	maxFile := s.parser.Config().MaxFileSize

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(headToGet)
	r.Use(apiHeaders)
	r.Use(requestID(s.logger))
	r.Use(limitBody(maxFile + multipartOverhead))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/imports", func(r chi.Router) {
		r.Get("/types", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"types": ImportTypes()})
		})
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{runID}", s.handleRun)
		r.Post("/{importType}", s.handlePreview)
	})
	return r
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	importType := schedparse.ImportType(chi.URLParam(r, "importType"))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooBig.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("form field \"file\": %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = r.URL.Query().Get("kind")
	}

	preview, err := s.Preview(r.Context(), Request{
		ImportType: importType,
		FileName:   header.Filename,
		Kind:       schedparse.SourceKind(kind),
		Data:       data,
	})
	switch {
	case errors.Is(err, ErrUnknownImportType):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, preview)
	}
}

func (s *Service) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("run log disabled"))
		return
	}
	runs, err := s.runs.Recent(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Service) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("run log disabled"))
		return
	}
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "runID"))
	if errors.Is(err, importlog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
