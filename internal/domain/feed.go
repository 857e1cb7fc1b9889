package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by every DecodeError caused by an absent or null
// required attribute.
var ErrMissingField = errors.New("missing required field")

// DecodeError reports which feature in a feed failed required-field checks.
type DecodeError struct {
	Index int    // position in the features array
	ID    string // feature id, if the feed supplied one
	Field string // JSON path of the offending attribute
	Err   error
}

func (e *DecodeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("feature %d (%s): %s: %v", e.Index, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("feature %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FeedMetadata is the feed's own description of the snapshot.
type FeedMetadata struct {
	Generated int64  `json:"generated"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

// Feed is a decoded feed snapshot.
type Feed struct {
	Metadata FeedMetadata
	Records  []RawQuakeRecord
}

// Wire types. Pointers distinguish absent/null from zero.

type featureCollection struct {
	Type     string       `json:"type"`
	Metadata FeedMetadata `json:"metadata"`
	Features *[]feature   `json:"features"`
}

type feature struct {
	ID         string            `json:"id"`
	Properties featureProperties `json:"properties"`
	Geometry   *featureGeometry  `json:"geometry"`
}

type featureProperties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  *int64   `json:"time"`
	URL   string   `json:"url"`
}

type featureGeometry struct {
	Type        string    `json:"type"`
	Coordinates []*float64 `json:"coordinates"`
}

// ParseFeed decodes a GeoJSON feed document into records, preserving feature
// order. Any feature missing mag, place, time, or a three-component
// coordinate array fails the whole decode with a *DecodeError.
func ParseFeed(data []byte) (Feed, error) {
	var doc featureCollection
	if err := json.Unmarshal(data, &doc); err != nil {
		return Feed{}, fmt.Errorf("parse feed: %w", err)
	}
	if doc.Features == nil {
		return Feed{}, fmt.Errorf("parse feed: features: %w", ErrMissingField)
	}

	records := make([]RawQuakeRecord, 0, len(*doc.Features))
	for i, f := range *doc.Features {
		rec, err := decodeFeature(i, f)
		if err != nil {
			return Feed{}, err
		}
		records = append(records, rec)
	}

	return Feed{Metadata: doc.Metadata, Records: records}, nil
}

func decodeFeature(index int, f feature) (RawQuakeRecord, error) {
	missing := func(field string) error {
		return &DecodeError{Index: index, ID: f.ID, Field: field, Err: ErrMissingField}
	}

	switch {
	case f.Properties.Mag == nil:
		return RawQuakeRecord{}, missing("properties.mag")
	case f.Properties.Place == nil:
		return RawQuakeRecord{}, missing("properties.place")
	case f.Properties.Time == nil:
		return RawQuakeRecord{}, missing("properties.time")
	case f.Geometry == nil:
		return RawQuakeRecord{}, missing("geometry")
	}

	coords := f.Geometry.Coordinates
	if len(coords) < 3 {
		return RawQuakeRecord{}, &DecodeError{
			Index: index,
			ID:    f.ID,
			Field: "geometry.coordinates",
			Err:   fmt.Errorf("%w: want [lon, lat, depth], got %d components", ErrMissingField, len(coords)),
		}
	}
	for i, c := range coords[:3] {
		if c == nil {
			return RawQuakeRecord{}, missing(fmt.Sprintf("geometry.coordinates[%d]", i))
		}
	}

	return RawQuakeRecord{
		ID:         f.ID,
		Magnitude:  *f.Properties.Mag,
		DepthKm:    *coords[2],
		Place:      *f.Properties.Place,
		TimeMillis: *f.Properties.Time,
		Longitude:  *coords[0],
		Latitude:   *coords[1],
		URL:        f.Properties.URL,
	}, nil
}

// ValidateFeed checks every feature instead of stopping at the first bad
// one. It returns one DecodeError per failing feature; the error result is
// reserved for documents that are not a feature collection at all.
func ValidateFeed(data []byte) ([]*DecodeError, error) {
	var doc featureCollection
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("parse feed: features: %w", ErrMissingField)
	}

	var problems []*DecodeError
	for i, f := range *doc.Features {
		if _, err := decodeFeature(i, f); err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				problems = append(problems, decodeErr)
			}
		}
	}
	return problems, nil
}
