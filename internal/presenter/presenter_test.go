package presenter

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/couchcryptid/quakemap-service/internal/domain"
	"github.com/couchcryptid/quakemap-service/internal/observability"
)

var fixedTime = time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		ContainerID: "map",
		Center:      domain.Position{Lat: 37.09, Lon: -95.71},
		Zoom:        5,
		TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	}
}

func newTestPresenter(opts Options) *Presenter {
	return New(opts, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func testPoints() []domain.RenderedPoint {
	m := domain.NewMapper(nil, language.AmericanEnglish)
	return []domain.RenderedPoint{
		m.MapFeature(domain.RawQuakeRecord{ID: "a", Magnitude: 4.5, DepthKm: 95, Place: "Near Coast", TimeMillis: 1700000000000, Longitude: -120, Latitude: 36}),
		m.MapFeature(domain.RawQuakeRecord{ID: "b", Magnitude: 1.2, DepthKm: 4, Place: "Inland", TimeMillis: 1700000500000, Longitude: -118, Latitude: 34}),
	}
}

func TestPresent_BuildsView(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	p := newTestPresenter(testOptions())
	points := testPoints()

	view, err := p.Present(points)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, "map", view.ContainerID)
	assert.Equal(t, domain.Position{Lat: 37.09, Lon: -95.71}, view.Center)
	assert.Equal(t, 5, view.Zoom)
	assert.Equal(t, fixedTime, view.CreatedAt)

	require.Len(t, view.BaseLayers, 1)
	assert.Equal(t, "Street Map", view.BaseLayers[0].Name)
	assert.Equal(t, "Earthquakes", view.Overlay.Name)
	assert.Equal(t, points, view.Overlay.Points)
	assert.Equal(t, 2, view.MarkerCount())
	assert.False(t, view.LayerControl.Collapsed)

	require.NotNil(t, view.Legend)
	assert.Equal(t, "bottomleft", view.Legend.Position)
	assert.Equal(t, domain.LegendBuckets(), view.Legend.Buckets)

	assert.Same(t, view, p.Current())
	require.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPresent_CopiesPoints(t *testing.T) {
	p := newTestPresenter(testOptions())
	points := testPoints()

	view, err := p.Present(points)
	require.NoError(t, err)

	points[0].Place = "mutated"
	assert.NotEqual(t, "mutated", view.Overlay.Points[0].Place)
}

func TestPresent_EmptyPoints(t *testing.T) {
	p := newTestPresenter(testOptions())

	view, err := p.Present(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, view.MarkerCount())
	require.NotNil(t, view.Legend)
	assert.Len(t, view.Legend.Buckets, 5)
}

func TestPresent_SecondCallFails(t *testing.T) {
	p := newTestPresenter(testOptions())

	first, err := p.Present(testPoints())
	require.NoError(t, err)

	second, err := p.Present(nil)
	require.ErrorIs(t, err, ErrAlreadyPresented)
	assert.Nil(t, second)
	assert.Same(t, first, p.Current(), "the first view stays current")
}

func TestPresent_MapboxSatelliteLayer(t *testing.T) {
	opts := testOptions()
	opts.MapboxToken = "pk.test token"
	p := newTestPresenter(opts)

	view, err := p.Present(nil)
	require.NoError(t, err)

	require.Len(t, view.BaseLayers, 2)
	sat := view.BaseLayers[1]
	assert.Equal(t, "Satellite", sat.Name)
	assert.Contains(t, sat.URL, "access_token=pk.test+token")
	assert.Equal(t, 512, sat.TileSize)
	assert.Equal(t, -1, sat.ZoomOffset)
}

func TestCheckReadiness_BeforePresent(t *testing.T) {
	p := newTestPresenter(testOptions())
	assert.Nil(t, p.Current())
	require.Error(t, p.CheckReadiness(context.Background()))
}

func TestAddLegend_AttachesToGivenView(t *testing.T) {
	view := &ViewHandle{}
	AddLegend(view)

	require.NotNil(t, view.Legend)
	assert.Equal(t, "Depth (km)", view.Legend.Title)
	assert.Equal(t, domain.LegendBuckets(), view.Legend.Buckets)

	other := &ViewHandle{}
	assert.Nil(t, other.Legend)
}

func TestRender_Page(t *testing.T) {
	p := newTestPresenter(testOptions())
	view, err := p.Present(testPoints())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	page := buf.String()

	assert.Contains(t, page, `<div id="map" class="quake-map">`)
	assert.Contains(t, page, "leaflet.js")
	for _, label := range []string{"-10–10", "10–30", "30–60", "60–90", "90+"} {
		assert.Contains(t, page, label)
	}
	assert.Contains(t, page, `"name":"Earthquakes"`)
	assert.Contains(t, page, `"color":"red"`)
	assert.Contains(t, page, `"color":"darkgreen"`)
	assert.Contains(t, page, `"collapsed":false`)
	assert.Contains(t, page, `"position":"bottomleft"`)
	assert.Contains(t, page, "Near Coast")
}

func TestRender_EmptyView(t *testing.T) {
	p := newTestPresenter(testOptions())
	view, err := p.Present(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	assert.Contains(t, buf.String(), `"markers":[]`)
	assert.Contains(t, buf.String(), "90+")
}

func TestRender_EscapesPlace(t *testing.T) {
	m := domain.NewMapper(nil, language.AmericanEnglish)
	point := m.MapFeature(domain.RawQuakeRecord{ID: "x", Magnitude: 2, DepthKm: 20, Place: "<script>alert(1)</script>", TimeMillis: 1})

	p := newTestPresenter(testOptions())
	view, err := p.Present([]domain.RenderedPoint{point})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	assert.NotContains(t, buf.String(), "<script>alert(1)")
}

func TestRender_NilView(t *testing.T) {
	require.Error(t, Render(io.Discard, nil))
}

func TestNewFeatureCollection(t *testing.T) {
	points := testPoints()
	fc := NewFeatureCollection(points)

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "a", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, [3]float64{-120, 36, 95}, f.Geometry.Coordinates)
	assert.Equal(t, 4.5, f.Properties.Mag)
	assert.Equal(t, int64(1700000000000), f.Properties.Time)
	assert.Equal(t, domain.ColorRed, f.Properties.Color)
	assert.Equal(t, 22.5, f.Properties.Radius)
	assert.Equal(t, "b", fc.Features[1].ID)
}

func TestNewFeatureCollection_Empty(t *testing.T) {
	fc := NewFeatureCollection(nil)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}
