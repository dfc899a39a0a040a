package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/errors"
	"distviz/internal/export"
	"distviz/internal/schema"
	"distviz/internal/view"
	sessionmw "distviz/ui/middleware"
)

// pageData feeds the index page and its fragments
type pageData struct {
	Continuous []string
	Discrete   []string
	State      *view.State
	Refresh    map[string]bool
	SourceURL  string
}

// Selected returns the chosen family name of a class for the selector fragments
func (p pageData) Selected(class string) string {
	c, ok := distribution.ParseClass(class)
	if !ok {
		return ""
	}
	return p.State.Selected(c)
}

// DocsLogoURL is the logo shown inside the reference link
func (p pageData) DocsLogoURL() string { return schema.DocsLogoURL }

// DocsLogoTitle is the logo tooltip
func (p pageData) DocsLogoTitle() string { return schema.DocsLogoTitle }

func (a *App) newPageData(s *view.State) pageData {
	return pageData{
		Continuous: a.catalog.Names(distribution.Continuous),
		Discrete:   a.catalog.Names(distribution.Discrete),
		State:      s,
		SourceURL:  a.config.SourceURL,
	}
}

func (a *App) session(w http.ResponseWriter, r *http.Request) (*view.Session, bool) {
	sess, ok := sessionmw.SessionFrom(r.Context())
	if !ok {
		a.writeError(w, r, errors.InternalError("request has no session"))
	}
	return sess, ok
}

// handleIndex renders the full explorer page for the caller's session
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	sess.With(func(s *view.State) {
		a.renderTemplate(w, "index.html", a.newPageData(s))
	})
}

// handleSelect switches the selected family and returns the rebuilt panel
func (a *App) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}

	class, valid := distribution.ParseClass(r.FormValue("class"))
	if !valid {
		a.writeError(w, r, errors.InvalidInput(fmt.Sprintf("unknown class %q", r.FormValue("class"))))
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))

	sess.With(func(s *view.State) {
		if err := a.coordinator.Select(s, class, name); err != nil {
			a.writeError(w, r, err)
			return
		}
		if !isHTMX(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		a.renderTemplate(w, "select_update", a.newPageData(s))
	})
}

// handleParam applies one widget edit and returns the charts plus out-of-band
// updates for the surfaces other than the one that sent the value
func (a *App) handleParam(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}

	name := r.FormValue("name")
	source, valid := view.ParseSurface(r.FormValue("source"))
	if !valid {
		a.writeError(w, r, errors.InvalidInput(fmt.Sprintf("unknown source %q", r.FormValue("source"))))
		return
	}

	raw := strings.TrimSpace(r.FormValue("value"))
	if raw == "" {
		// an emptied text box keeps the previous value
		w.WriteHeader(http.StatusNoContent)
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		a.writeError(w, r, errors.InvalidInput(fmt.Sprintf("%s: %q is not a number", name, raw)))
		return
	}

	sess.With(func(s *view.State) {
		refresh, err := a.coordinator.SetParameter(s, name, value, source)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		data := a.newPageData(s)
		data.Refresh = make(map[string]bool, len(refresh))
		for _, surface := range refresh {
			data.Refresh[string(surface)] = true
		}
		param, _ := s.Parameter(name)
		a.renderTemplate(w, "param_update", paramUpdate{pageData: data, Param: param})
	})
}

type paramUpdate struct {
	pageData
	Param view.Parameter
}

// handleResample draws a fresh sample for the current values
func (a *App) handleResample(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	sess.With(func(s *view.State) {
		a.coordinator.Reevaluate(s)
		a.renderTemplate(w, "charts", a.newPageData(s))
	})
}

// handleChart renders the session's latest histogram or violin figure as a standalone page
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}

	kind := chi.URLParam(r, "kind")
	var fig chart.Figure
	sess.With(func(s *view.State) {
		hist, violin := s.Figures()
		switch kind {
		case chart.Histogram.String():
			fig = hist
		case chart.Violin.String():
			fig = violin
		}
	})
	if fig.Kind.String() != kind {
		a.writeError(w, r, errors.NotFound(fmt.Sprintf("chart %q", kind)))
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(fig, &buf); err != nil {
		a.writeError(w, r, errors.Wrap(err, "render chart"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleExport downloads the current sample as an xlsx workbook
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}

	var (
		buf  bytes.Buffer
		name string
		err  error
	)
	sess.With(func(s *view.State) {
		if !s.HasSelection() {
			err = errors.InvalidInput("no distribution selected")
			return
		}
		name = s.Descriptor().Name
		err = export.WriteWorkbook(&buf, s.Descriptor(), s.Values(), s.Result())
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-sample.xlsx"`, name))
	_, _ = buf.WriteTo(w)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": a.sessions.Len(),
	})
}
