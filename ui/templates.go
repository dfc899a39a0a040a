package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"distviz/internal/errors"
)

// renderTemplate executes a template into a buffer first so a failing template
// never leaves a half-written response
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.log.Errorf("[renderTemplate] %s: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		a.log.Warningf("[renderTemplate] write %s: %v", templateName, err)
	}
}

// writeJSON encodes v with the given status
func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		a.log.Errorf("[writeJSON] %v", err)
		http.Error(w, "Encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps an AppError code to an HTTP status; JSON callers get a JSON body
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.log.Errorf("[%s %s] %v", r.Method, r.URL.Path, err)
	} else {
		a.log.Debugf("[%s %s] %v", r.Method, r.URL.Path, err)
	}

	if isJSON(r) {
		a.writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Error: err.Error()})
		return
	}
	http.Error(w, err.Error(), status)
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
