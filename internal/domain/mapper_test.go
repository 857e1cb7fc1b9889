package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

const testPlace = "10km N of X"

func newTestMapper() *Mapper {
	return NewMapper(time.UTC, language.AmericanEnglish)
}

func TestMapFeature(t *testing.T) {
	rec := RawQuakeRecord{
		ID:         "us7000test",
		Magnitude:  5,
		DepthKm:    12,
		Place:      testPlace,
		TimeMillis: 1700000000000,
		Longitude:  -100,
		Latitude:   40,
	}

	point := newTestMapper().MapFeature(rec)

	assert.Equal(t, "us7000test", point.ID)
	assert.Equal(t, 25.0, point.Radius)
	assert.Equal(t, ColorGreen, point.Color)
	assert.Equal(t, Position{Lat: 40, Lon: -100}, point.Position)
	assert.Contains(t, point.PopupText, testPlace)
	assert.Contains(t, point.PopupText, "<h3>Magnitude:</h3> 5")
	assert.Contains(t, point.PopupText, "<h3>Depth:</h3> 12")
	assert.Contains(t, point.PopupText, "11/14/2023, 10:13:20 PM")
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), point.Time)
}

func TestMapFeature_ClampsNonPositiveRadius(t *testing.T) {
	m := newTestMapper()

	tests := []struct {
		name      string
		magnitude float64
		expected  float64
	}{
		{"negative magnitude", -2, MinRadius},
		{"zero magnitude", 0, MinRadius},
		{"tiny magnitude", 0.1, MinRadius},
		{"small magnitude", 0.4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := m.MapFeature(RawQuakeRecord{Magnitude: tt.magnitude})
			assert.InDelta(t, tt.expected, point.Radius, 1e-9)
			assert.Equal(t, tt.magnitude, point.Magnitude)
		})
	}
}

func TestMapFeature_EscapesPlace(t *testing.T) {
	point := newTestMapper().MapFeature(RawQuakeRecord{Place: `<script>alert("x")</script>`})

	assert.NotContains(t, point.PopupText, "<script>")
	assert.Contains(t, point.PopupText, "&lt;script&gt;")
}

func TestFormatTime(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name     string
		loc      *time.Location
		millis   int64
		expected string
	}{
		{"utc afternoon", time.UTC, 1700000000000, "11/14/2023, 10:13:20 PM"},
		{"utc midnight", time.UTC, 0, "1/1/1970, 12:00:00 AM"},
		{"nil location means utc", nil, 1700000000000, "11/14/2023, 10:13:20 PM"},
		{"tokyo", tokyo, 1700000000000, "11/15/2023, 7:13:20 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.loc, language.AmericanEnglish)
			assert.Equal(t, tt.expected, m.FormatTime(tt.millis))
		})
	}
}
