package layout

import (
	"image"
	"testing"
)

func TestComputePositions(t *testing.T) {
	p := Compute()

	tests := []struct {
		name string
		got  image.Point
		want image.Point
	}{
		{name: "title origin", got: p.Title, want: image.Pt(64, 64)},
		{name: "subtitle origin", got: p.Subtitle, want: image.Pt(64, 128)},
		{name: "logo origin", got: p.Logo, want: image.Pt(1336, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("position = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestComputeRegions(t *testing.T) {
	p := Compute()

	tests := []struct {
		name string
		got  image.Rectangle
		want image.Rectangle
	}{
		{name: "graph region", got: p.Graph, want: image.Rect(64, 256, 1536, 644)},
		{name: "panel region", got: p.Panel, want: image.Rect(48, 240, 1552, 660)},
		{name: "card region", got: p.Card, want: image.Rect(32, 32, 1568, 868)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("region = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestComputeDerivedSizes(t *testing.T) {
	p := Compute()

	if w := p.Graph.Dx(); w != 1472 {
		t.Errorf("graph width = %d, want 1472", w)
	}
	if h := p.Graph.Dy(); h != 388 {
		t.Errorf("graph height = %d, want 388", h)
	}
	if w := p.Card.Dx(); w != 1536 {
		t.Errorf("card width = %d, want 1536", w)
	}
	if h := p.Card.Dy(); h != 836 {
		t.Errorf("card height = %d, want 836", h)
	}
	if p.FooterY != 804 {
		t.Errorf("footer y = %d, want 804", p.FooterY)
	}
}

func TestLogoConstraints(t *testing.T) {
	if LogoMaxHeight != 135 {
		t.Errorf("LogoMaxHeight = %d, want 135 (15%% of canvas height)", LogoMaxHeight)
	}
	if LogoMaxWidth != 200 {
		t.Errorf("LogoMaxWidth = %d, want 200", LogoMaxWidth)
	}
}

func TestComputeIsPure(t *testing.T) {
	// Two computations must agree exactly; positions depend only on constants.
	if a, b := Compute(), Compute(); a != b {
		t.Errorf("Compute() not deterministic: %+v != %+v", a, b)
	}
}
