package restserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/chrissnell/citibike-dashboard/internal/assets"
	"github.com/chrissnell/citibike-dashboard/internal/chart"
	"github.com/chrissnell/citibike-dashboard/internal/dashboard"
	"github.com/chrissnell/citibike-dashboard/internal/dataset"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

const (
	dailyCSV = "date,bike_rides_daily,avgTemp,season\n" +
		"2022-01-01,20428,11.6,winter\n" +
		"2022-01-02,21000,12.0,winter\n" +
		"2022-07-01,120000,80.2,summer\n" +
		"2022-07-02,118000,82.0,summer\n"
	stationsCSV = "start_station_name,value\n" +
		"W 21 St & 6 Ave,129016\n" +
		"Broadway & W 58 St,115128\n" +
		"West St & Chambers St,123214\n"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

type testEnv struct {
	dir     string
	handler http.Handler
}

func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var cfg config.ConfigData
	cfg.ApplyDefaults()
	cfg.Dashboard.PageTitle = "CitiBike Strategy Dashboard"
	cfg.Data.DailyCSV = filepath.Join(dir, "daily.csv")
	cfg.Data.StationsCSV = filepath.Join(dir, "stations.csv")
	cfg.Assets.Dir = dir
	cfg.Assets.BannerImage = "banner.png"
	cfg.Assets.TripMapHTML = "kepler.gl.html"

	src := dataset.NewCSVSource(cfg.Data.DailyCSV, cfg.Data.StationsCSV, "")
	dash, err := dashboard.New(cfg, src, assets.NewStore(dir))
	if err != nil {
		t.Fatalf("dashboard.New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ctrl, err := NewController(ctx, &sync.WaitGroup{}, cfg.Server, dash, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController() error: %v", err)
	}
	return &testEnv{dir: dir, handler: ctrl.Server.Handler}
}

func defaultFiles() map[string]string {
	return map[string]string{
		"daily.csv":    dailyCSV,
		"stations.csv": stationsCSV,
		"banner.png":   string(pngHeader),
	}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestRootRedirect(t *testing.T) {
	env := newTestEnv(t, defaultFiles())
	rec := env.get(t, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/page/overview" {
		t.Errorf("expected redirect to /page/overview, got %s", loc)
	}
}

func TestServePage(t *testing.T) {
	env := newTestEnv(t, defaultFiles())

	tests := []struct {
		name       string
		target     string
		wantStatus int
		contains   []string
		excludes   []string
	}{
		{
			name:       "overview",
			target:     "/page/overview",
			wantStatus: http.StatusOK,
			contains:   []string{"CitiBike Strategy Dashboard", "Project Objective", `src="/images/banner"`, "Navigate to:"},
			excludes:   []string{"Filter by Season"},
		},
		{
			name:       "weather defaults to all seasons",
			target:     "/page/weather",
			wantStatus: http.StatusOK,
			contains:   []string{"Filter by Season", `<option value="All" selected>`, "Daily Bike Rides", `name="filtered" value="1"`},
		},
		{
			name:       "weather with a season",
			target:     "/page/weather?season=summer&filtered=1",
			wantStatus: http.StatusOK,
			contains:   []string{`<option value="summer" selected>`, `<option value="winter">`},
		},
		{
			name:       "weather with nothing selected",
			target:     "/page/weather?filtered=1",
			wantStatus: http.StatusOK,
			contains:   []string{"No days match the selected seasons."},
		},
		{
			name:       "trip duration uses configured summary",
			target:     "/page/trip-duration",
			wantStatus: http.StatusOK,
			contains:   []string{"Trip Duration Summary", "10.0 minutes", "65.4 minutes", "Image unavailable"},
		},
		{
			name:       "top stations",
			target:     "/page/top-stations",
			wantStatus: http.StatusOK,
			contains:   []string{"Top 20 Most Popular CitiBike Stations in NYC", "Top 20 Stations"},
		},
		{
			name:       "hotspots without a map",
			target:     "/page/hotspots",
			wantStatus: http.StatusOK,
			contains:   []string{"Top 500 Trips", "The trip hotspot map is not available."},
		},
		{
			name:       "recommendations",
			target:     "/page/recommendations",
			wantStatus: http.StatusOK,
			contains:   []string{"<h3>Recommendations</h3>"},
		},
		{
			name:       "unknown page",
			target:     "/page/settings",
			wantStatus: http.StatusNotFound,
			contains:   []string{"Page not found", "Navigate to:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(t, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			body := rec.Body.String()
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("expected body to contain %q", s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(body, s) {
					t.Errorf("expected body not to contain %q", s)
				}
			}
		})
	}
}

func TestServePageDataErrors(t *testing.T) {
	files := defaultFiles()
	files["stations.csv"] = "start_station_name,value\nW 21 St & 6 Ave,lots\n"
	delete(files, "daily.csv")
	env := newTestEnv(t, files)

	for _, target := range []string{"/page/top-stations", "/page/weather"} {
		rec := env.get(t, target)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", target, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "error-panel") || !strings.Contains(body, "Navigate to:") {
			t.Errorf("%s: expected an error panel inside the page chrome", target)
		}
	}

	// Pages without tables are unaffected.
	if rec := env.get(t, "/page/overview"); rec.Code != http.StatusOK {
		t.Errorf("overview: expected 200, got %d", rec.Code)
	}
}

func TestChartAPIs(t *testing.T) {
	env := newTestEnv(t, defaultFiles())

	t.Run("pages", func(t *testing.T) {
		rec := env.get(t, "/api/pages")
		var pages []dashboard.Page
		if err := json.Unmarshal(rec.Body.Bytes(), &pages); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if len(pages) != 6 || pages[0].Slug != "overview" || pages[5].Title != "Insights & Recommendations" {
			t.Errorf("unexpected pages: %+v", pages)
		}
	})

	t.Run("seasons", func(t *testing.T) {
		rec := env.get(t, "/api/seasons")
		var options []string
		if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if strings.Join(options, ",") != "All,winter,summer" {
			t.Errorf("unexpected options: %v", options)
		}
	})

	t.Run("daily filtered", func(t *testing.T) {
		rec := env.get(t, "/api/charts/daily?season=summer")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var fig struct {
			Data []struct {
				X     []string `json:"x"`
				YAxis string   `json:"yaxis"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if len(fig.Data) != 2 || len(fig.Data[0].X) != 2 || fig.Data[1].YAxis != "y2" {
			t.Errorf("unexpected figure: %+v", fig)
		}
	})

	t.Run("stations ordered ascending", func(t *testing.T) {
		rec := env.get(t, "/api/charts/stations")
		var fig chart.Figure
		if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		counts, ok := fig.Data[0].X.([]any)
		if !ok || len(counts) != 3 {
			t.Fatalf("unexpected x values: %#v", fig.Data[0].X)
		}
		if counts[0].(float64) != 115128 || counts[2].(float64) != 129016 {
			t.Errorf("expected ascending counts, got %v", counts)
		}
	})

	t.Run("msgpack", func(t *testing.T) {
		rec := env.get(t, "/api/charts/stations?format=msgpack")
		if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
			t.Errorf("expected msgpack, got %s", ct)
		}
	})

	t.Run("trip duration not configured", func(t *testing.T) {
		rec := env.get(t, "/api/charts/trip-duration")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestChartPNGs(t *testing.T) {
	env := newTestEnv(t, defaultFiles())

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/charts/daily.png", http.StatusOK},
		{"/charts/daily.png?season=winter", http.StatusOK},
		{"/charts/daily.png?season=monsoon", http.StatusNoContent},
		{"/charts/stations.png", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := env.get(t, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && !strings.HasPrefix(rec.Body.String(), string(pngHeader)) {
				t.Error("expected a PNG body")
			}
		})
	}
}

func TestStaticArtifacts(t *testing.T) {
	t.Run("images", func(t *testing.T) {
		env := newTestEnv(t, defaultFiles())

		rec := env.get(t, "/images/banner")
		if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
			t.Errorf("banner: got %d %s", rec.Code, rec.Header().Get("Content-Type"))
		}
		if rec := env.get(t, "/images/boxplot"); rec.Code != http.StatusNotFound {
			t.Errorf("boxplot: expected 404, got %d", rec.Code)
		}
		if rec := env.get(t, "/images/logo"); rec.Code != http.StatusNotFound {
			t.Errorf("logo: expected 404, got %d", rec.Code)
		}
	})

	t.Run("trip map missing", func(t *testing.T) {
		env := newTestEnv(t, defaultFiles())
		rec := env.get(t, "/hotspots/map")
		if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "not available") {
			t.Errorf("expected placeholder with 404, got %d", rec.Code)
		}
	})

	t.Run("trip map verbatim", func(t *testing.T) {
		files := defaultFiles()
		files["kepler.gl.html"] = "<html><body>kepler</body></html>"
		env := newTestEnv(t, files)

		rec := env.get(t, "/hotspots/map")
		if rec.Code != http.StatusOK || rec.Body.String() != files["kepler.gl.html"] {
			t.Errorf("expected the map verbatim, got %d %q", rec.Code, rec.Body.String())
		}
		if page := env.get(t, "/page/hotspots"); !strings.Contains(page.Body.String(), `height="1000"`) {
			t.Error("expected a 1000px map embed")
		}
	})

	t.Run("stylesheet", func(t *testing.T) {
		env := newTestEnv(t, defaultFiles())
		if rec := env.get(t, "/static/css/dashboard.css"); rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	env := newTestEnv(t, defaultFiles())

	rec := env.get(t, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz: got %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected the caller's request ID, got %q", got)
	}

	rec = env.get(t, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "citibike_dashboard_http_requests_total") {
		t.Errorf("metrics: got %d", rec.Code)
	}
}

func TestSelectionFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantAll   bool
		wantEmpty bool
		wantLen   int
	}{
		{"no parameters", "", true, false, 1},
		{"explicit all", "season=All", true, false, 1},
		{"one season", "season=summer", false, false, 1},
		{"two seasons", "season=summer&season=winter&filtered=1", false, false, 2},
		{"marker only", "filtered=1", false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/page/weather?"+tt.query, nil)
			sel := selectionFromQuery(req.URL.Query())
			if sel.Has("All") != tt.wantAll {
				t.Errorf("Has(All) = %v, want %v", sel.Has("All"), tt.wantAll)
			}
			if sel.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", sel.IsEmpty(), tt.wantEmpty)
			}
			if sel.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", sel.Len(), tt.wantLen)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page/overview", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("Connection") != "close" {
		t.Error("expected Connection: close after a panic")
	}
}
