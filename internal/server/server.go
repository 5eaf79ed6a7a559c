// Package server is the upload front end: a form that posts a statement,
// a JSON analysis endpoint and CSV downloads of the cleaned subsets.
package server

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/statements/internal/analyzer"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/diag"
	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/statement"
	"github.com/cleared-dev/statements/internal/summary"
)

//go:embed index.html
var indexHTML string

// uploadField is the multipart field carrying the statement.
const uploadField = "statement"

// Server handles statement uploads.
type Server struct {
	cfg      *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	template *template.Template
}

// New creates a Server and registers its routes.
func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		mux:      http.NewServeMux(),
		template: template.Must(template.New("index").Parse(indexHTML)),
	}
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// Start listens on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.withLogging(s.handleHome))
	s.mux.HandleFunc("POST /api/analyze", s.withLogging(s.handleAnalyze))
	s.mux.HandleFunc("POST /api/export/{kind}", s.withLogging(s.handleExport))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, map[string]any{"Currency": s.cfg.Currency}); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type tableJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type analyzeResponse struct {
	Status      string               `json:"status"`
	RunID       string               `json:"run_id"`
	Totals      model.Totals         `json:"totals"`
	Monthly     []model.MonthlyEntry `json:"monthly"`
	Chart       []summary.Point      `json:"chart"`
	Dropped     analyzer.DropCounts  `json:"dropped"`
	Income      tableJSON            `json:"income"`
	Expenses    tableJSON            `json:"expenses"`
	Full        tableJSON            `json:"full"`
	Diagnostics []diag.Entry         `json:"diagnostics"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	res, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}

	cols := s.cfg.Statement.Columns
	if err := s.writeJSON(w, http.StatusOK, analyzeResponse{
		Status:      "success",
		RunID:       res.RunID,
		Totals:      res.Totals,
		Monthly:     res.Monthly,
		Chart:       summary.NetSeries(res.Monthly),
		Dropped:     res.Dropped,
		Income:      toJSON(res.Income, cols),
		Expenses:    toJSON(res.Expenses, cols),
		Full:        toJSON(res.Full, cols),
		Diagnostics: res.Diagnostics.Entries(),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	if kind != "income" && kind != "expenses" {
		s.respondError(w, r, http.StatusNotFound, "unknown export "+kind, nil)
		return
	}

	res, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}

	tbl, name := res.Income, s.cfg.Output.Names.Income
	if kind == "expenses" {
		tbl, name = res.Expenses, s.cfg.Output.Names.Expenses
	}

	var buf bytes.Buffer
	if err := export.WriteTable(&buf, tbl, s.cfg.Statement.Columns); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to write csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = buf.WriteTo(w)
}

// analyzeUpload copies the uploaded statement to a temp file, runs the
// pipeline on it and removes the file on every path. It writes the
// error response itself and reports ok=false on failure.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (*analyzer.Result, bool) {
	limit := s.cfg.Server.MaxUploadMB << 20
	if limit <= 0 {
		limit = config.DefaultMaxUploadMB << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to parse form", err)
		return nil, false
	}

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "statement file required", err)
		return nil, false
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "bsa-upload-*.csv")
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to create temp file", err)
		return nil, false
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.respondError(w, r, http.StatusInternalServerError, "failed to write temp file", err)
		return nil, false
	}
	if err := tmp.Close(); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to write temp file", err)
		return nil, false
	}

	opts := analyzer.OptionsFromConfig(s.cfg)
	opts.OutputDir = ""
	res := analyzer.AnalyzeFile(tmp.Name(), opts)
	if !res.OK {
		s.logger.Warn("analysis failed", "run", res.RunID, "kind", res.Err.Kind, "err", res.Err.Message)
		_ = s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"status":  "error",
			"run_id":  res.RunID,
			"kind":    string(res.Err.Kind),
			"message": res.Err.Message,
		})
		return nil, false
	}
	s.logger.Info("analysis complete", "run", res.RunID, "rows", res.Full.Len())
	return res, true
}

// toJSON renders t with normalized date and amount cells, as exported.
func toJSON(t *model.Table, cols statement.Columns) tableJSON {
	out := tableJSON{Columns: t.Columns, Rows: make([][]string, len(t.Records))}
	for i, rec := range t.Records {
		out.Rows[i] = export.MarshalRecord(t, rec, cols)
	}
	return out
}

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log the request and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
