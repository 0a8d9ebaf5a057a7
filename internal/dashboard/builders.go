package dashboard

import (
	"context"

	"github.com/chrissnell/citibike-dashboard/internal/chart"
	"github.com/chrissnell/citibike-dashboard/internal/filter"
	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

func (d *Dashboard) buildOverview(ctx context.Context, v *View) error {
	d.attachImage(v, ImageBanner)
	return nil
}

func (d *Dashboard) buildWeather(ctx context.Context, v *View) error {
	rows, err := d.source.DailyRecords(ctx)
	if err != nil {
		return err
	}

	sel := filter.NewSelection(v.SelectedSeasons...)
	filtered := filter.FilterBySeason(rows, sel)

	v.ShowSeasonFilter = true
	v.SeasonOptions = filter.Options(filter.Domain(rows, types.DailyRecord.Category))
	v.Rows = len(filtered)
	v.DailyFigure = chart.DualAxis(filtered, d.DualAxisStyle())
	return nil
}

func (d *Dashboard) buildTripDuration(ctx context.Context, v *View) error {
	d.attachImage(v, ImageBoxplot)

	s := d.cfg.Dashboard.TripDurationSummary
	v.Summary = types.TripDurationSummary{Median: s.Median, Mean: s.Mean, Min: s.Min, Max: s.Max}

	if !d.source.HasTripDurations() {
		return nil
	}

	samples, err := d.source.TripDurations(ctx)
	if err != nil {
		return err
	}
	v.Rows = len(samples)
	v.BoxFigure = chart.BoxPlot(samples, chart.DefaultBoxStyle())
	if summary, ok := chart.Summarize(samples); ok {
		v.Summary = summary
		v.SummaryFromSamples = true
	} else {
		log.Warn("trip duration table is empty, showing configured summary")
	}
	return nil
}

func (d *Dashboard) buildTopStations(ctx context.Context, v *View) error {
	d.attachImage(v, ImageStations)

	rows, err := d.source.StationRankings(ctx)
	if err != nil {
		return err
	}
	v.Rows = len(rows)
	v.StationsFigure = chart.RankedBars(rows, chart.DefaultBarStyle())
	return nil
}

func (d *Dashboard) buildHotspots(ctx context.Context, v *View) error {
	v.MapAvailable = d.assets.Exists(d.cfg.Assets.TripMapHTML)
	if !v.MapAvailable {
		log.Warnw("trip map missing, showing placeholder", "file", d.cfg.Assets.TripMapHTML)
	}
	return nil
}

func (d *Dashboard) buildRecommendations(ctx context.Context, v *View) error {
	d.attachImage(v, ImageRecommendations)
	return nil
}
