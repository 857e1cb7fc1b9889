package domain

import (
	"html"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinRadius is the smallest marker radius handed to the map. Magnitudes at or
// below zero would otherwise produce invisible or invalid circles.
const MinRadius = 1.0

// localeTimeLayout mirrors the en-US output of a browser's Date.toLocaleString.
const localeTimeLayout = "1/2/2006, 3:04:05 PM"

const popupTemplate = `<h3>Location:</h3> %s
<h3>Magnitude:</h3> %v
<h3>Depth:</h3> %v
<h3>Time:</h3> %s`

// Mapper converts feed records into map markers.
type Mapper struct {
	loc     *time.Location
	printer *message.Printer
}

// NewMapper creates a Mapper that formats times in loc and numbers for the
// given locale. A nil loc means UTC.
func NewMapper(loc *time.Location, locale language.Tag) *Mapper {
	if loc == nil {
		loc = time.UTC
	}
	return &Mapper{
		loc:     loc,
		printer: message.NewPrinter(locale),
	}
}

// MapFeature converts one record into a RenderedPoint. It assumes the record
// passed ParseFeed's required-field checks and never fails.
func (m *Mapper) MapFeature(rec RawQuakeRecord) RenderedPoint {
	radius := SizeFromMagnitude(rec.Magnitude)
	if radius < MinRadius {
		radius = MinRadius
	}

	return RenderedPoint{
		ID:        rec.ID,
		Position:  Position{Lat: rec.Latitude, Lon: rec.Longitude},
		Radius:    radius,
		Color:     ColorFromDepth(rec.DepthKm),
		PopupText: m.popupText(rec),
		Magnitude: rec.Magnitude,
		DepthKm:   rec.DepthKm,
		Place:     rec.Place,
		Time:      rec.Time(),
		URL:       rec.URL,
	}
}

// FormatTime renders an epoch-millisecond timestamp in the mapper's zone.
func (m *Mapper) FormatTime(millis int64) string {
	return time.UnixMilli(millis).In(m.loc).Format(localeTimeLayout)
}

func (m *Mapper) popupText(rec RawQuakeRecord) string {
	return m.printer.Sprintf(popupTemplate,
		html.EscapeString(rec.Place),
		rec.Magnitude,
		rec.DepthKm,
		m.FormatTime(rec.TimeMillis),
	)
}
