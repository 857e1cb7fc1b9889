package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLegendBuckets(t *testing.T) {
	expected := []LegendBucket{
		{Threshold: -10, Color: ColorDarkGreen, Label: "-10–10"},
		{Threshold: 10, Color: ColorGreen, Label: "10–30"},
		{Threshold: 30, Color: ColorGreenYellow, Label: "30–60"},
		{Threshold: 60, Color: ColorYellow, Label: "60–90"},
		{Threshold: 90, Color: ColorRed, Label: "90+"},
	}

	if diff := cmp.Diff(expected, LegendBuckets()); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
}
