package domain

import "time"

// RawQuakeRecord is one earthquake as published by the feed, after decoding.
type RawQuakeRecord struct {
	ID         string
	Magnitude  float64
	DepthKm    float64
	Place      string
	TimeMillis int64
	Longitude  float64
	Latitude   float64
	URL        string
}

// Time returns the event origin time in UTC.
func (r RawQuakeRecord) Time() time.Time {
	return time.UnixMilli(r.TimeMillis).UTC()
}

// Position is a latitude/longitude pair in map (not GeoJSON) order.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ColorBucket is one of the six marker fill colors.
type ColorBucket string

const (
	ColorRed         ColorBucket = "red"
	ColorLightCoral  ColorBucket = "lightcoral"
	ColorYellow      ColorBucket = "yellow"
	ColorGreenYellow ColorBucket = "greenyellow"
	ColorGreen       ColorBucket = "green"
	ColorDarkGreen   ColorBucket = "darkgreen"
)

// RenderedPoint is a map marker derived from one RawQuakeRecord.
type RenderedPoint struct {
	ID        string      `json:"id"`
	Position  Position    `json:"position"`
	Radius    float64     `json:"radius"`
	Color     ColorBucket `json:"color"`
	PopupText string      `json:"popup"`

	Magnitude float64   `json:"magnitude"`
	DepthKm   float64   `json:"depth_km"`
	Place     string    `json:"place"`
	Time      time.Time `json:"time"`
	URL       string    `json:"url,omitempty"`
}
