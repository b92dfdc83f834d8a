package systems

import (
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/geom"
)

var cfg *config.Config

func init() {
	cfg = config.Default()
}

func TestDetects(t *testing.T) {
	tests := []struct {
		name      string
		observer  geom.Point
		target    geom.Point
		detection int
		want      bool
	}{
		{"just inside", geom.Pt(0, 0), geom.Pt(0, 129), 130, true},
		{"exactly at range", geom.Pt(0, 0), geom.Pt(0, 130), 130, false},
		{"rounded up past range", geom.Pt(0, 0), geom.Pt(1, 1), 2, false},
		{"rounded up inside range", geom.Pt(0, 0), geom.Pt(1, 1), 3, true},
		{"same position", geom.Pt(5, 5), geom.Pt(5, 5), 1, true},
		{"zero detection", geom.Pt(5, 5), geom.Pt(5, 5), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detects(tt.observer, tt.target, tt.detection); got != tt.want {
				t.Errorf("Detects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectsIsOneWay(t *testing.T) {
	a, b := geom.Pt(0, 0), geom.Pt(100, 0)
	if !Detects(a, b, 130) {
		t.Error("A with range 130 should sense B at 100")
	}
	if Detects(b, a, 50) {
		t.Error("B with range 50 should not sense A at 100")
	}
}

func TestDetectsSegment(t *testing.T) {
	a, b := geom.Pt(0, 0), geom.Pt(100, 0)

	if !DetectsSegment(geom.Pt(50, 20), a, b, 21) {
		t.Error("segment 20 below should be sensed with range 21")
	}
	if DetectsSegment(geom.Pt(50, 20), a, b, 20) {
		t.Error("segment 20 below should not be sensed with range 20")
	}
	// Past the end the closest point is the endpoint.
	if DetectsSegment(geom.Pt(130, 40), a, b, 50) {
		t.Error("endpoint at distance 50 should not be sensed with range 50")
	}
	if !DetectsSegment(geom.Pt(130, 40), a, b, 51) {
		t.Error("endpoint at distance 50 should be sensed with range 51")
	}
}
