package domain

import "strconv"

// legendThresholds are the lower depth bounds (km) shown in the map legend.
var legendThresholds = []float64{-10, 10, 30, 60, 90}

// LegendBucket is one depth range and its sample color.
type LegendBucket struct {
	Threshold float64     `json:"threshold"`
	Color     ColorBucket `json:"color"`
	Label     string      `json:"label"`
}

// LegendBuckets returns the static depth legend. Each sample color is taken
// one kilometer above its threshold; labels are "<low>–<high>" for interior
// buckets and "<max>+" for the last.
func LegendBuckets() []LegendBucket {
	buckets := make([]LegendBucket, len(legendThresholds))
	for i, low := range legendThresholds {
		label := formatDepth(low) + "+"
		if i+1 < len(legendThresholds) {
			label = formatDepth(low) + "–" + formatDepth(legendThresholds[i+1])
		}
		buckets[i] = LegendBucket{
			Threshold: low,
			Color:     ColorFromDepth(low + 1),
			Label:     label,
		}
	}
	return buckets
}

func formatDepth(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
