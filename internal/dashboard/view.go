package dashboard

import (
	"html/template"

	"github.com/chrissnell/citibike-dashboard/internal/chart"
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// Logical image names, as served under /images/{name}.
const (
	ImageBanner          = "banner"
	ImageStations        = "stations"
	ImageBoxplot         = "boxplot"
	ImageRecommendations = "recommendations"
)

// MapHeight is the embed height of the trip map, in pixels.
const MapHeight = 1000

// Image is a reference to a static image; a missing image renders as a
// placeholder.
type Image struct {
	Name      string
	URL       string
	Available bool
}

// View is everything the page template needs to draw one page.
type View struct {
	SiteTitle string
	Page      Page
	Pages     []Page
	Copy      map[string]template.HTML

	ShowSeasonFilter bool
	SeasonOptions    []string
	SelectedSeasons  []string
	// Rows is the number of records plotted after filtering.
	Rows int

	DailyFigure    *chart.Figure
	StationsFigure *chart.Figure
	BoxFigure      *chart.Figure

	Images map[string]Image

	Summary            types.TripDurationSummary
	SummaryFromSamples bool

	MapAvailable bool
	MapHeight    int
}

// Selected reports whether a season option is part of the current selection.
func (v *View) Selected(option string) bool {
	for _, s := range v.SelectedSeasons {
		if s == option {
			return true
		}
	}
	return false
}

// IsImage reports whether name is one of the logical image names.
func IsImage(name string) bool {
	switch name {
	case ImageBanner, ImageStations, ImageBoxplot, ImageRecommendations:
		return true
	}
	return false
}
