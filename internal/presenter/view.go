package presenter

import (
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/quakemap-service/internal/domain"
)

// TileLayer is a raster base map selectable in the layer control.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	TileSize    int    `json:"tileSize,omitempty"`
	ZoomOffset  int    `json:"zoomOffset,omitempty"`
}

// Overlay is the toggleable marker layer.
type Overlay struct {
	Name   string
	Points []domain.RenderedPoint
}

// LayerControl configures the base/overlay selector.
type LayerControl struct {
	Collapsed bool
}

// Legend is the static depth legend control.
type Legend struct {
	Position string
	Title    string
	Buckets  []domain.LegendBucket
}

// ViewHandle is an assembled map view, returned to the caller of Present.
// Treat it as read-only once presented; page handlers read it concurrently.
type ViewHandle struct {
	ID           uuid.UUID
	ContainerID  string
	Center       domain.Position
	Zoom         int
	CreatedAt    time.Time
	BaseLayers   []TileLayer
	Overlay      Overlay
	LayerControl LayerControl
	Legend       *Legend
}

// MarkerCount is the number of points in the quake overlay.
func (v *ViewHandle) MarkerCount() int {
	return len(v.Overlay.Points)
}

// AddLegend attaches the static depth legend to view, replacing any legend
// already present.
func AddLegend(view *ViewHandle) {
	view.Legend = &Legend{
		Position: legendPosition,
		Title:    legendTitle,
		Buckets:  domain.LegendBuckets(),
	}
}
