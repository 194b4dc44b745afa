package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/treedump/pkg/buildinfo"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatXML:  "application/xml; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatXML
	}
	detailed, _ := strconv.ParseBool(q.Get("detailed"))

	artifacts, _, err := s.render(r.Context(), pipeline.Options{
		Formats:  []string{format},
		Prefix:   q.Get("prefix"),
		Detailed: detailed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

type evalRequest struct {
	Code string `json:"code"`
}

type evalResponse struct {
	ID     string `json:"id"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEvalBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode eval request"))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "code is required"))
		return
	}

	s.mu.Lock()
	res, err := s.script.Eval(r.Context(), req.Code)
	s.mu.Unlock()

	resp := evalResponse{ID: res.ID, Stdout: res.Stdout, Stderr: res.Stderr, Value: res.Value}
	if err != nil {
		resp.Error = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)

	// Scripts may have changed the tree even when they failed.
	s.broadcast(r.Context())
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error(), Code: string(errors.GetCode(err))})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
