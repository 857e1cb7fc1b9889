package presenter

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/samber/lo"

	"github.com/couchcryptid/quakemap-service/internal/domain"
)

const pageTitle = "Earthquakes, Past Week"

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// Circle marker styling shared by every point.
var markerStyle = markerStyleJSON{
	Stroke:      "white",
	Weight:      0.8,
	Opacity:     0.8,
	FillOpacity: 0.7,
}

type pageData struct {
	Title       string
	ContainerID string
	Config      pageConfig
}

// pageConfig is serialized into the page script. html/template JSON-encodes
// it for the JavaScript context.
type pageConfig struct {
	ContainerID  string           `json:"containerId"`
	Center       domain.Position  `json:"center"`
	Zoom         int              `json:"zoom"`
	BaseLayers   []TileLayer      `json:"baseLayers"`
	Overlay      overlayJSON      `json:"overlay"`
	Marker       markerStyleJSON  `json:"marker"`
	LayerControl layerControlJSON `json:"layerControl"`
	Legend       *legendJSON      `json:"legend"`
}

type overlayJSON struct {
	Name    string       `json:"name"`
	Markers []markerJSON `json:"markers"`
}

type markerJSON struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Popup  string  `json:"popup"`
}

type markerStyleJSON struct {
	Stroke      string  `json:"stroke"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

type layerControlJSON struct {
	Collapsed bool `json:"collapsed"`
}

type legendJSON struct {
	Position string             `json:"position"`
	Title    string             `json:"title"`
	Buckets  []legendBucketJSON `json:"buckets"`
}

type legendBucketJSON struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Render writes the HTML page that mounts view into its container.
func Render(w io.Writer, view *ViewHandle) error {
	if view == nil {
		return errors.New("render: nil view")
	}
	if err := pageTemplate.Execute(w, newPageData(view)); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}

func newPageData(view *ViewHandle) pageData {
	cfg := pageConfig{
		ContainerID: view.ContainerID,
		Center:      view.Center,
		Zoom:        view.Zoom,
		BaseLayers:  view.BaseLayers,
		Overlay: overlayJSON{
			Name: view.Overlay.Name,
			Markers: lo.Map(view.Overlay.Points, func(p domain.RenderedPoint, _ int) markerJSON {
				return markerJSON{
					Lat:    p.Position.Lat,
					Lon:    p.Position.Lon,
					Radius: p.Radius,
					Color:  string(p.Color),
					Popup:  p.PopupText,
				}
			}),
		},
		Marker:       markerStyle,
		LayerControl: layerControlJSON{Collapsed: view.LayerControl.Collapsed},
	}
	if view.Legend != nil {
		cfg.Legend = &legendJSON{
			Position: view.Legend.Position,
			Title:    view.Legend.Title,
			Buckets: lo.Map(view.Legend.Buckets, func(b domain.LegendBucket, _ int) legendBucketJSON {
				return legendBucketJSON{Color: string(b.Color), Label: b.Label}
			}),
		}
	}
	return pageData{Title: pageTitle, ContainerID: view.ContainerID, Config: cfg}
}
