// Package dashboard assembles the six dashboard pages from the loaded tables
// and static assets.
package dashboard

import (
	"context"
	"fmt"
	"html/template"

	"github.com/chrissnell/citibike-dashboard/internal/assets"
	"github.com/chrissnell/citibike-dashboard/internal/chart"
	"github.com/chrissnell/citibike-dashboard/internal/dataset"
	"github.com/chrissnell/citibike-dashboard/internal/filter"
	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/internal/types"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

// Dashboard builds page views. It keeps no per-request state; tables are
// read again for every view.
type Dashboard struct {
	source dataset.Source
	assets *assets.Store
	cfg    config.ConfigData
	copy   map[string]template.HTML
}

// New returns a dashboard over source and store.
func New(cfg config.ConfigData, source dataset.Source, store *assets.Store) (*Dashboard, error) {
	pageCopy, err := loadCopy()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		source: source,
		assets: store,
		cfg:    cfg,
		copy:   pageCopy,
	}, nil
}

// Render builds the view for the page named by slug. sel only applies to
// the weather page.
func (d *Dashboard) Render(ctx context.Context, slug string, sel filter.Selection) (*View, error) {
	page, ok := Lookup(slug)
	if !ok {
		return nil, fmt.Errorf("%q: %w", slug, types.ErrPageNotFound)
	}

	v := &View{
		SiteTitle:       d.cfg.Dashboard.PageTitle,
		Page:            page,
		Pages:           Pages(),
		Copy:            d.copy,
		SelectedSeasons: sel.Values(),
		Images:          make(map[string]Image),
		MapHeight:       MapHeight,
	}

	if err := page.build(d, ctx, v); err != nil {
		return nil, fmt.Errorf("page %s: %w", slug, err)
	}
	log.Debugw("rendered page", "page", slug, "rows", v.Rows)
	return v, nil
}

// SiteTitle is the browser title shared by every page.
func (d *Dashboard) SiteTitle() string {
	return d.cfg.Dashboard.PageTitle
}

// DualAxisStyle returns the styling of the rides/temperature chart for the
// configured data year.
func (d *Dashboard) DualAxisStyle() chart.DualAxisStyle {
	return chart.DefaultDualAxisStyle(d.cfg.Dashboard.Year)
}

// SeasonOptions returns "All" followed by the seasons in the daily table.
func (d *Dashboard) SeasonOptions(ctx context.Context) ([]string, error) {
	rows, err := d.source.DailyRecords(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Options(filter.Domain(rows, types.DailyRecord.Category)), nil
}

// DailyRecords returns the daily table filtered by season.
func (d *Dashboard) DailyRecords(ctx context.Context, sel filter.Selection) ([]types.DailyRecord, error) {
	rows, err := d.source.DailyRecords(ctx)
	if err != nil {
		return nil, err
	}
	return filter.FilterBySeason(rows, sel), nil
}

// DailyFigure returns the rides/temperature chart for the selected seasons.
func (d *Dashboard) DailyFigure(ctx context.Context, sel filter.Selection) (*chart.Figure, error) {
	rows, err := d.DailyRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	return chart.DualAxis(rows, d.DualAxisStyle()), nil
}

// StationRankings returns the station table as published.
func (d *Dashboard) StationRankings(ctx context.Context) ([]types.StationRanking, error) {
	return d.source.StationRankings(ctx)
}

// StationsFigure returns the top stations bar chart.
func (d *Dashboard) StationsFigure(ctx context.Context) (*chart.Figure, error) {
	rows, err := d.source.StationRankings(ctx)
	if err != nil {
		return nil, err
	}
	return chart.RankedBars(rows, chart.DefaultBarStyle()), nil
}

// HasTripDurations reports whether duration samples are configured.
func (d *Dashboard) HasTripDurations() bool {
	return d.source.HasTripDurations()
}

// TripDurationFigure returns the interactive duration box plot. It fails
// with types.ErrTableUnavailable when no samples are configured.
func (d *Dashboard) TripDurationFigure(ctx context.Context) (*chart.Figure, error) {
	rows, err := d.source.TripDurations(ctx)
	if err != nil {
		return nil, err
	}
	return chart.BoxPlot(rows, chart.DefaultBoxStyle()), nil
}

// Image returns the bytes and content type of a logical image.
func (d *Dashboard) Image(name string) ([]byte, string, error) {
	file, ok := d.imageFile(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown image %q: %w", name, types.ErrAssetNotFound)
	}
	return d.assets.Image(file)
}

// TripMap returns the pre-built trip map document verbatim.
func (d *Dashboard) TripMap() (string, error) {
	return d.assets.Document(d.cfg.Assets.TripMapHTML)
}

func (d *Dashboard) imageFile(name string) (string, bool) {
	a := d.cfg.Assets
	switch name {
	case ImageBanner:
		return a.BannerImage, true
	case ImageStations:
		return a.StationsImage, true
	case ImageBoxplot:
		return a.BoxplotImage, true
	case ImageRecommendations:
		return a.RecommendationsImage, true
	}
	return "", false
}

// attachImage records an image reference, marking it unavailable when the
// file cannot be read.
func (d *Dashboard) attachImage(v *View, name string) {
	file, _ := d.imageFile(name)
	img := Image{Name: name, URL: "/images/" + name, Available: d.assets.Exists(file)}
	if !img.Available {
		log.Warnw("image asset missing, showing placeholder", "image", name, "file", file)
	}
	v.Images[name] = img
}
