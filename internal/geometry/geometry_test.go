package geometry

import (
	"testing"

	"notch-overlay/internal/state"
)

func TestApproximate_WithInset(t *testing.T) {
	g := Approximate(1512, 982, 37)

	if !g.HasNotch {
		t.Error("expected HasNotch with a positive inset")
	}
	if g.NotchHeight < 38 || g.NotchHeight > 52 {
		t.Errorf("NotchHeight = %v; want within [38, 52]", g.NotchHeight)
	}
	if g.NotchWidth < 200 || g.NotchWidth > 260 {
		t.Errorf("NotchWidth = %v; want within [200, 260]", g.NotchWidth)
	}
}

func TestApproximate_ClampBands(t *testing.T) {
	tests := []struct {
		name           string
		width, height  float64
		wantNotchW     float64
		wantNotchH     float64
	}{
		// 10% of dimension clamped into the band.
		{"small screen clamps up", 1280, 300, 200, 38},
		{"huge screen clamps down", 5120, 2880, 260, 52},
		{"mid screen uses percentage", 2200, 450, 220, 45},
	}

	for _, tc := range tests {
		g := Approximate(tc.width, tc.height, 30)
		if g.NotchWidth != tc.wantNotchW {
			t.Errorf("%s: NotchWidth = %v; want %v", tc.name, g.NotchWidth, tc.wantNotchW)
		}
		if g.NotchHeight != tc.wantNotchH {
			t.Errorf("%s: NotchHeight = %v; want %v", tc.name, g.NotchHeight, tc.wantNotchH)
		}
	}
}

func TestApproximate_NoInsetUsesFallbackFootprint(t *testing.T) {
	g := Approximate(1920, 1080, 0)

	if g.HasNotch {
		t.Error("HasNotch should be false without an inset")
	}
	// The hit-zone footprint stays non-zero so hover detection keeps a
	// stable default target.
	if g.NotchWidth != 180 || g.NotchHeight != 40 {
		t.Errorf("fallback footprint = %vx%v; want 180x40", g.NotchWidth, g.NotchHeight)
	}
}

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	if g.ScreenWidth != 1920 || g.ScreenHeight != 1080 {
		t.Errorf("default screen = %vx%v; want 1920x1080", g.ScreenWidth, g.ScreenHeight)
	}
	if g.HasNotch {
		t.Error("default geometry should not report a notch")
	}
}

func TestCompute_Invariant(t *testing.T) {
	tests := []struct {
		name      string
		notchW    float64
		extraW    float64
		nonNotch  bool
		wantWidth float64
	}{
		{"scenario A", 220, 400, false, 780},
		{"zero extras", 220, 0, false, 380},
		{"non notch mode drops notch width", 220, 400, true, 560},
		{"zero notch width", 0, 400, false, 560},
	}

	for _, tc := range tests {
		g := ScreenGeometry{ScreenWidth: 2000, ScreenHeight: 1200, NotchWidth: tc.notchW, NotchHeight: 40}
		s := state.WindowSettings{ExtraWidth: tc.extraW, ExtraHeight: 300, NonNotchMode: tc.nonNotch}

		l := Compute(g, s)
		if l.Width != tc.wantWidth {
			t.Errorf("%s: Width = %v; want %v", tc.name, l.Width, tc.wantWidth)
		}
		if l.Height != g.NotchHeight+s.ExtraHeight {
			t.Errorf("%s: Height = %v; want %v", tc.name, l.Height, g.NotchHeight+s.ExtraHeight)
		}
		if l.X != (g.ScreenWidth-l.Width)/2 {
			t.Errorf("%s: X = %v; want %v", tc.name, l.X, (g.ScreenWidth-l.Width)/2)
		}
		if l.Y != 0 {
			t.Errorf("%s: Y = %v; want 0", tc.name, l.Y)
		}
	}
}

func TestInfo_VisibleHeight(t *testing.T) {
	g := ScreenGeometry{ScreenWidth: 1512, ScreenHeight: 982, NotchWidth: 200, NotchHeight: 38, HasNotch: true}

	info := g.Info()
	if info.VisibleHeight != 944 {
		t.Errorf("VisibleHeight = %v; want 944", info.VisibleHeight)
	}
	if !info.HasNotch {
		t.Error("Info should carry HasNotch through")
	}
}
