package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"distviz/domain/distribution"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/schema"
)

// boundsDTO carries bounds as text so infinite ends survive JSON
type boundsDTO struct {
	Lower string `json:"lower"`
	Upper string `json:"upper"`
}

func newBoundsDTO(b distribution.Bounds) boundsDTO {
	return boundsDTO{Lower: distribution.FormatNumber(b.Lower), Upper: distribution.FormatNumber(b.Upper)}
}

type parameterDTO struct {
	Name     string    `json:"name"`
	Domain   boundsDTO `json:"domain"`
	Integral bool      `json:"integral,omitempty"`
}

type distributionDTO struct {
	Name       string         `json:"name"`
	Class      string         `json:"class"`
	LongName   string         `json:"long_name,omitempty"`
	Support    boundsDTO      `json:"support"`
	Parameters []parameterDTO `json:"parameters"`
}

func newDistributionDTO(d *distribution.Descriptor) distributionDTO {
	params := make([]parameterDTO, len(d.Params))
	for i, p := range d.Params {
		params[i] = parameterDTO{Name: p.Name, Domain: newBoundsDTO(p.Domain), Integral: p.Integral}
	}
	return distributionDTO{
		Name:       d.Name,
		Class:      string(d.Class),
		LongName:   d.LongName,
		Support:    newBoundsDTO(d.Support),
		Parameters: params,
	}
}

type widgetDTO struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	InputDomain  boundsDTO `json:"input_domain"`
	SliderDomain boundsDTO `json:"slider_domain"`
	Default      float64   `json:"default"`
	Step         float64   `json:"step"`
}

type derivationDTO struct {
	distributionDTO
	Header   string      `json:"header"`
	Notes    string      `json:"notes"`
	DocsURL  string      `json:"docs_url"`
	DocsText string      `json:"docs_text"`
	Help     string      `json:"help"`
	Widgets  []widgetDTO `json:"widgets"`
}

type sampleRequest struct {
	Params        map[string]float64 `json:"params"`
	IncludeValues bool               `json:"include_values"`
}

type quantilesDTO struct {
	Min    *float64 `json:"min"`
	Q1     *float64 `json:"q1"`
	Median *float64 `json:"median"`
	Q3     *float64 `json:"q3"`
	Max    *float64 `json:"max"`
}

type sampleResponse struct {
	Status    engine.Status `json:"status"`
	Message   string        `json:"message,omitempty"`
	Params    []float64     `json:"params"`
	Size      int           `json:"size"`
	Quantiles *quantilesDTO `json:"quantiles,omitempty"`
	Mean      *float64      `json:"mean,omitempty"`
	StdDev    *float64      `json:"std_dev,omitempty"`
	Values    []*float64    `json:"values,omitempty"`
}

// finite maps non-finite numbers to JSON null
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

func newSampleResponse(values []float64, res engine.Result, includeValues bool) sampleResponse {
	out := sampleResponse{Status: res.Status, Message: res.Message, Params: values, Size: len(res.Values)}
	if !res.Valid() {
		return out
	}

	q := res.Quantiles
	out.Quantiles = &quantilesDTO{
		Min:    finite(q.Min),
		Q1:     finite(q.Q1),
		Median: finite(q.Median),
		Q3:     finite(q.Q3),
		Max:    finite(q.Max),
	}
	out.Mean = finite(res.Mean)
	out.StdDev = finite(res.StdDev)

	if includeValues {
		out.Values = make([]*float64, len(res.Values))
		for i, v := range res.Values {
			out.Values[i] = finite(v)
		}
	}
	return out
}

// handleListDistributions lists the catalog grouped by class
func (a *App) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]distributionDTO, len(distribution.Classes))
	for _, class := range distribution.Classes {
		families := a.catalog.All(class)
		list := make([]distributionDTO, len(families))
		for i, d := range families {
			list[i] = newDistributionDTO(d)
		}
		out[string(class)] = list
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *App) lookup(r *http.Request) (*distribution.Descriptor, error) {
	class, ok := distribution.ParseClass(chi.URLParam(r, "class"))
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("distribution class %q", chi.URLParam(r, "class")))
	}
	return a.catalog.Lookup(class, chi.URLParam(r, "name"))
}

// handleDescribeDistribution returns the panel layout of one family
func (a *App) handleDescribeDistribution(w http.ResponseWriter, r *http.Request) {
	d, err := a.lookup(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	der := schema.Derive(d)
	widgets := make([]widgetDTO, len(der.Widgets))
	for i, wd := range der.Widgets {
		widgets[i] = widgetDTO{
			Name:         wd.Name,
			Label:        wd.Label,
			InputDomain:  newBoundsDTO(wd.InputDomain),
			SliderDomain: newBoundsDTO(wd.SliderDomain),
			Default:      wd.Default,
			Step:         wd.Step,
		}
	}

	a.writeJSON(w, http.StatusOK, derivationDTO{
		distributionDTO: newDistributionDTO(d),
		Header:          der.Header,
		Notes:           der.Description.Notes,
		DocsURL:         der.Description.DocsURL,
		DocsText:        der.Description.DocsText,
		Help:            der.Help,
		Widgets:         widgets,
	})
}

// handleSampleDistribution evaluates one parameter vector. Parameters missing from
// the request take their widget defaults.
func (a *App) handleSampleDistribution(w http.ResponseWriter, r *http.Request) {
	d, err := a.lookup(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		a.writeError(w, r, errors.InvalidInput(fmt.Sprintf("malformed request body: %v", err)))
		return
	}

	values := schema.Defaults(schema.Derive(d).Widgets)
	for name, v := range req.Params {
		i := d.Index(name)
		if i < 0 {
			a.writeError(w, r, errors.InvalidInput(fmt.Sprintf("%s has no parameter %q", d.Name, name)))
			return
		}
		values[i] = v
	}

	res := a.engine.Evaluate(d, values)
	a.log.Debugf("[SampleAPI] %s %v: %s", d.Name, values, res.Status)
	a.writeJSON(w, http.StatusOK, newSampleResponse(values, res, req.IncludeValues))
}
