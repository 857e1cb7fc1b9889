package presenter

import (
	"github.com/samber/lo"

	"github.com/couchcryptid/quakemap-service/internal/domain"
)

// FeatureCollection is the GeoJSON export of a view's quake overlay.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one rendered point in GeoJSON form.
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id,omitempty"`
	Geometry   PointGeometry     `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// PointGeometry uses GeoJSON [lon, lat, depth] order.
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [3]float64 `json:"coordinates"`
}

// FeatureProperties carries the source attributes plus the derived styling.
type FeatureProperties struct {
	Mag    float64            `json:"mag"`
	Place  string             `json:"place"`
	Time   int64              `json:"time"`
	URL    string             `json:"url,omitempty"`
	Radius float64            `json:"radius"`
	Color  domain.ColorBucket `json:"color"`
}

// NewFeatureCollection converts rendered points back to GeoJSON, keeping
// their order.
func NewFeatureCollection(points []domain.RenderedPoint) FeatureCollection {
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: lo.Map(points, func(p domain.RenderedPoint, _ int) Feature {
			return Feature{
				Type: "Feature",
				ID:   p.ID,
				Geometry: PointGeometry{
					Type:        "Point",
					Coordinates: [3]float64{p.Position.Lon, p.Position.Lat, p.DepthKm},
				},
				Properties: FeatureProperties{
					Mag:    p.Magnitude,
					Place:  p.Place,
					Time:   p.Time.UnixMilli(),
					URL:    p.URL,
					Radius: p.Radius,
					Color:  p.Color,
				},
			}
		}),
	}
}
