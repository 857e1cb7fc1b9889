package presenter

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/couchcryptid/quakemap-service/internal/domain"
	"github.com/couchcryptid/quakemap-service/internal/observability"
)

const (
	streetLayerName    = "Street Map"
	satelliteLayerName = "Satellite"
	overlayName        = "Earthquakes"
	legendPosition     = "bottomleft"
	legendTitle        = "Depth (km)"

	osmAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	mapboxAttribution = `&copy; <a href="https://www.mapbox.com/about/maps/">Mapbox</a> &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a>`
	mapboxTileURL     = "https://api.mapbox.com/styles/v1/mapbox/satellite-v9/tiles/{z}/{x}/{y}"
)

// ErrAlreadyPresented is returned by a second call to Present. A view is
// assembled exactly once per process; there is no teardown or redraw.
var ErrAlreadyPresented = errors.New("map view already presented")

// Options configures the assembled view.
type Options struct {
	ContainerID string
	Center      domain.Position
	Zoom        int
	TileURL     string
	MapboxToken string // enables the satellite base layer when set
}

// Presenter assembles the map view from rendered points and exposes the
// result to page handlers.
type Presenter struct {
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics

	presented atomic.Bool
	current   atomic.Pointer[ViewHandle]
}

// New creates a Presenter.
func New(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Presenter {
	return &Presenter{opts: opts, logger: logger, metrics: metrics}
}

// Present builds the base layers, the quake overlay holding every point, a
// non-collapsed layer control, and the legend. It succeeds at most once.
func (p *Presenter) Present(points []domain.RenderedPoint) (*ViewHandle, error) {
	if !p.presented.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPresented
	}

	overlay := make([]domain.RenderedPoint, len(points))
	copy(overlay, points)

	view := &ViewHandle{
		ID:           uuid.New(),
		ContainerID:  p.opts.ContainerID,
		Center:       p.opts.Center,
		Zoom:         p.opts.Zoom,
		CreatedAt:    clock.Now().UTC(),
		BaseLayers:   p.baseLayers(),
		Overlay:      Overlay{Name: overlayName, Points: overlay},
		LayerControl: LayerControl{Collapsed: false},
	}
	AddLegend(view)

	p.current.Store(view)
	p.metrics.ViewPresented.Set(1)
	p.metrics.MarkersRendered.Set(float64(len(overlay)))
	p.logger.Info("map view presented",
		"view_id", view.ID.String(),
		"markers", len(overlay),
		"base_layers", len(view.BaseLayers),
	)
	return view, nil
}

// Current returns the presented view, or nil before Present succeeds.
func (p *Presenter) Current() *ViewHandle {
	return p.current.Load()
}

// CheckReadiness reports whether a view is available to serve.
func (p *Presenter) CheckReadiness(_ context.Context) error {
	if p.current.Load() == nil {
		return errors.New("map view has not been presented yet")
	}
	return nil
}

func (p *Presenter) baseLayers() []TileLayer {
	layers := []TileLayer{{
		Name:        streetLayerName,
		URL:         p.opts.TileURL,
		Attribution: osmAttribution,
		MaxZoom:     19,
	}}
	if p.opts.MapboxToken != "" {
		layers = append(layers, TileLayer{
			Name:        satelliteLayerName,
			URL:         mapboxTileURL + "?access_token=" + url.QueryEscape(p.opts.MapboxToken),
			Attribution: mapboxAttribution,
			MaxZoom:     18,
			TileSize:    512,
			ZoomOffset:  -1,
		})
	}
	return layers
}
