package restserver

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/chrissnell/citibike-dashboard/internal/chart"
	"github.com/chrissnell/citibike-dashboard/internal/constants"
	"github.com/chrissnell/citibike-dashboard/internal/dashboard"
	"github.com/chrissnell/citibike-dashboard/internal/filter"
	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/internal/types"
	"github.com/chrissnell/citibike-dashboard/pkg/responseformat"
)

const pageTemplate = "dashboard.html.tmpl"

// Handlers contains all HTTP handlers for the dashboard server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// figureRef names the element a chart description is drawn into.
type figureRef struct {
	ID     string
	Figure *chart.Figure
}

var templateFuncs = htmltemplate.FuncMap{
	"figure": func(id string, fig *chart.Figure) figureRef {
		return figureRef{ID: id, Figure: fig}
	},
	// seasonURL carries the current season selection over to another URL.
	"seasonURL": func(path string, seasons []string) htmltemplate.URL {
		q := url.Values{"season": seasons, "filtered": {"1"}}
		return htmltemplate.URL(path + "?" + q.Encode())
	},
}

// pageData is the root object handed to the page template.
type pageData struct {
	SiteTitle string
	Pages     []dashboard.Page
	Current   string
	Heading   string
	View      *dashboard.View
	Error     string
	Version   string
}

// selectionFromQuery reads the season selection. Without any season and
// without the filtered marker the selection is "All"; with the marker and no
// season it is empty.
func selectionFromQuery(q url.Values) filter.Selection {
	seasons := q["season"]
	if len(seasons) == 0 && q.Get("filtered") == "" {
		return filter.SelectAll()
	}
	return filter.NewSelection(seasons...)
}

// statusForError maps a page or API failure to an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrPageNotFound), errors.Is(err, types.ErrAssetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RedirectToOverview sends the bare root to the first page
func (h *Handlers) RedirectToOverview(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, "/page/"+dashboard.PageOverview, http.StatusFound)
}

// ServePage renders one dashboard page inside the shared page chrome
func (h *Handlers) ServePage(w http.ResponseWriter, req *http.Request) {
	slug := mux.Vars(req)["page"]
	sel := selectionFromQuery(req.URL.Query())

	data := pageData{
		SiteTitle: h.controller.dashboard.SiteTitle(),
		Pages:     dashboard.Pages(),
		Current:   slug,
		Version:   constants.Version,
	}

	view, err := h.controller.dashboard.Render(req.Context(), slug, sel)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusNotFound {
			pageRendersTotal.WithLabelValues("unknown", "not_found").Inc()
			data.Heading = "Page not found"
			data.Error = fmt.Sprintf("There is no dashboard page named %q.", slug)
		} else {
			pageRendersTotal.WithLabelValues(slug, "error").Inc()
			log.Errorw("error rendering page", "page", slug, "error", err,
				"request_id", requestIDFromContext(req.Context()))
			if p, ok := dashboard.Lookup(slug); ok {
				data.Heading = p.Heading
			}
			data.Error = "The data for this page could not be loaded: " + err.Error()
		}
		h.writePage(w, status, data)
		return
	}

	pageRendersTotal.WithLabelValues(slug, "ok").Inc()
	data.View = view
	data.Heading = view.Page.Heading
	h.writePage(w, http.StatusOK, data)
}

func (h *Handlers) writePage(w http.ResponseWriter, status int, data pageData) {
	view, err := htmltemplate.New(pageTemplate).Funcs(templateFuncs).ParseFS(h.controller.FS, pageTemplate)
	if err != nil {
		log.Error("error parsing page template:", err)
		http.Error(w, "page template unavailable", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := view.Execute(&buf, data); err != nil {
		log.Error("error executing page template:", err)
		http.Error(w, "error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// GetPages returns the navigation entries in sidebar order
func (h *Handlers) GetPages(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, dashboard.Pages())
}

// GetSeasons returns the season filter options
func (h *Handlers) GetSeasons(w http.ResponseWriter, req *http.Request) {
	options, err := h.controller.dashboard.SeasonOptions(req.Context())
	if err != nil {
		h.apiError(w, req, err)
		return
	}
	h.respond(w, req, options)
}

// GetDailyChart returns the rides/temperature chart description for ?season=
func (h *Handlers) GetDailyChart(w http.ResponseWriter, req *http.Request) {
	fig, err := h.controller.dashboard.DailyFigure(req.Context(), selectionFromQuery(req.URL.Query()))
	if err != nil {
		h.apiError(w, req, err)
		return
	}
	h.respond(w, req, fig)
}

// GetStationsChart returns the top stations chart description
func (h *Handlers) GetStationsChart(w http.ResponseWriter, req *http.Request) {
	fig, err := h.controller.dashboard.StationsFigure(req.Context())
	if err != nil {
		h.apiError(w, req, err)
		return
	}
	h.respond(w, req, fig)
}

// GetTripDurationChart returns the duration box plot description, when samples are
// configured
func (h *Handlers) GetTripDurationChart(w http.ResponseWriter, req *http.Request) {
	if !h.controller.dashboard.HasTripDurations() {
		h.writeAPIError(w, req, http.StatusNotFound, "no trip duration samples configured")
		return
	}
	fig, err := h.controller.dashboard.TripDurationFigure(req.Context())
	if err != nil {
		h.apiError(w, req, err)
		return
	}
	h.respond(w, req, fig)
}

// ServeDailyPNG draws the rides/temperature chart server-side
func (h *Handlers) ServeDailyPNG(w http.ResponseWriter, req *http.Request) {
	rows, err := h.controller.dashboard.DailyRecords(req.Context(), selectionFromQuery(req.URL.Query()))
	if err != nil {
		h.apiError(w, req, err)
		return
	}

	var buf bytes.Buffer
	err = chart.RenderDualAxisPNG(&buf, rows, h.controller.dashboard.DualAxisStyle())
	h.writePNG(w, req, &buf, err)
}

// ServeStationsPNG draws the top stations chart server-side
func (h *Handlers) ServeStationsPNG(w http.ResponseWriter, req *http.Request) {
	rows, err := h.controller.dashboard.StationRankings(req.Context())
	if err != nil {
		h.apiError(w, req, err)
		return
	}

	var buf bytes.Buffer
	err = chart.RenderRankedBarsPNG(&buf, rows, chart.DefaultBarStyle())
	h.writePNG(w, req, &buf, err)
}

func (h *Handlers) writePNG(w http.ResponseWriter, req *http.Request, buf *bytes.Buffer, err error) {
	if errors.Is(err, chart.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		log.Errorf("error rendering chart: %v", err)
		http.Error(w, "error rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// ServeImage serves one of the configured pipeline images by logical name
func (h *Handlers) ServeImage(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]

	data, contentType, err := h.controller.dashboard.Image(name)
	if err != nil {
		if dashboard.IsImage(name) {
			missingAssetsTotal.WithLabelValues(name).Inc()
		}
		log.Warnw("image unavailable", "image", name, "error", err)
		http.Error(w, "image not found", statusForError(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

const mapPlaceholder = `<!DOCTYPE html>
<html><body style="font-family: sans-serif; color: #555; text-align: center; padding-top: 4em;">
<p>The trip hotspot map is not available.</p>
</body></html>
`

// ServeTripMap serves the pre-built trip map document verbatim
func (h *Handlers) ServeTripMap(w http.ResponseWriter, req *http.Request) {
	doc, err := h.controller.dashboard.TripMap()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		missingAssetsTotal.WithLabelValues("trip_map").Inc()
		log.Warnw("trip map unavailable", "error", err)
		w.WriteHeader(statusForError(err))
		w.Write([]byte(mapPlaceholder))
		return
	}
	w.Write([]byte(doc))
}

// Healthz reports that the server is up
func (h *Handlers) Healthz(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, map[string]string{
		"status":  "ok",
		"version": constants.Version,
	})
}

func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, data any) {
	h.respondStatus(w, req, http.StatusOK, data)
}

func (h *Handlers) respondStatus(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponseStatus(w, req, status, data, nil); err != nil {
		log.Errorf("error encoding response: %v", err)
	}
}

func (h *Handlers) apiError(w http.ResponseWriter, req *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Errorw("error serving API request", "path", req.URL.Path, "error", err,
			"request_id", requestIDFromContext(req.Context()))
	}
	h.writeAPIError(w, req, status, err.Error())
}

func (h *Handlers) writeAPIError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	h.respondStatus(w, req, status, map[string]string{"error": msg})
}
