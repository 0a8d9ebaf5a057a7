package dashboard

import "context"

// Page slugs, in sidebar order.
const (
	PageOverview        = "overview"
	PageWeather         = "weather"
	PageTripDuration    = "trip-duration"
	PageTopStations     = "top-stations"
	PageHotspots        = "hotspots"
	PageRecommendations = "recommendations"
)

// Page is one entry of the sidebar navigation.
type Page struct {
	Slug    string `json:"slug" msgpack:"slug"`
	Title   string `json:"title" msgpack:"title"`
	Heading string `json:"heading" msgpack:"heading"`

	build func(d *Dashboard, ctx context.Context, v *View) error
}

var pages = []Page{
	{
		Slug:    PageOverview,
		Title:   "Overview",
		Heading: "CitiBike Strategy Dashboard",
		build:   (*Dashboard).buildOverview,
	},
	{
		Slug:    PageWeather,
		Title:   "Daily Rides vs Weather",
		Heading: "Daily Rides vs Weather",
		build:   (*Dashboard).buildWeather,
	},
	{
		Slug:    PageTripDuration,
		Title:   "Trip Duration",
		Heading: "CitiBike NYC: Trip Duration by Rider Type",
		build:   (*Dashboard).buildTripDuration,
	},
	{
		Slug:    PageTopStations,
		Title:   "Top Stations",
		Heading: "Top 20 Most Popular CitiBike Stations in NYC",
		build:   (*Dashboard).buildTopStations,
	},
	{
		Slug:    PageHotspots,
		Title:   "Trip Hotspots",
		Heading: "NYC CitiBike: Top 500 Trip Routes",
		build:   (*Dashboard).buildHotspots,
	},
	{
		Slug:    PageRecommendations,
		Title:   "Insights & Recommendations",
		Heading: "Insights & Recommendations",
		build:   (*Dashboard).buildRecommendations,
	},
}

// Pages returns the navigation entries in sidebar order.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// Lookup finds a page by slug.
func Lookup(slug string) (Page, bool) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}
