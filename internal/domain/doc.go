// Package domain models USGS earthquake feed records and the map markers
// derived from them.
//
// # Data Source
//
// Records come from the USGS Earthquake Hazards Program summary feeds,
// e.g. https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// The feed is a GeoJSON FeatureCollection refreshed by USGS every minute;
// this service reads it once per process start.
//
// # Feed Conventions
//
// Coordinates:
//
//	geometry.coordinates = [longitude, latitude, depth]
//	Depth is in kilometers and may be negative (events above sea level
//	relative to the WGS-84 ellipsoid).
//
// Magnitude:
//
//	properties.mag is a real number and may be zero or negative for very
//	small events. USGS occasionally publishes null for events still under
//	review; such records fail [ParseFeed] with a [DecodeError].
//
// Time:
//
//	properties.time is milliseconds since the Unix epoch (UTC).
//
// # Marker Classification
//
// Marker radius grows linearly with magnitude (see [SizeFromMagnitude]).
// Marker color encodes hypocenter depth in six buckets using strict
// greater-than tests, so boundary depths fall into the shallower bucket:
//
//	> 90 km  red
//	> 70 km  lightcoral
//	> 50 km  yellow
//	> 30 km  greenyellow
//	> 10 km  green
//	else     darkgreen
//
// The map legend samples five depth thresholds (-10, 10, 30, 60, 90) one
// kilometer above each threshold, so lightcoral never appears in it.
package domain
