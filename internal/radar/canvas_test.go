package radar

import "testing"

func TestCanvasProjection(t *testing.T) {
	c := NewCanvas(720, 360)

	cases := []struct {
		name string
		p    GeoPoint
		x, y float32
	}{
		{"origin", GeoPoint{Lat: 0, Lng: 0}, 360, 180},
		{"north pole", GeoPoint{Lat: 90, Lng: 0}, 360, 0},
		{"south pole", GeoPoint{Lat: -90, Lng: 0}, 360, 360},
		{"date line west", GeoPoint{Lat: 0, Lng: -180}, 0, 180},
		{"date line east", GeoPoint{Lat: 0, Lng: 180}, 720, 180},
		{"quarter", GeoPoint{Lat: 45, Lng: -90}, 180, 90},
	}
	for _, tc := range cases {
		x, y := c.project(tc.p)
		if x != tc.x || y != tc.y {
			t.Errorf("%s: project(%v) = (%v,%v), want (%v,%v)", tc.name, tc.p, x, y, tc.x, tc.y)
		}
	}
}

func TestCanvasDegToPx(t *testing.T) {
	c := NewCanvas(720, 360)
	if got := c.degToPx(360); got != 720 {
		t.Fatalf("degToPx(360) = %v, want 720", got)
	}
	if got := c.degToPx(1); got != 2 {
		t.Fatalf("degToPx(1) = %v, want 2", got)
	}
}

func TestCanvasShapeLifecycle(t *testing.T) {
	c := NewCanvas(720, 360)

	h1 := c.Marker(GeoPoint{Lat: 10, Lng: 20}, Style{Radius: 2})
	h2 := c.Circle(GeoPoint{Lat: 0, Lng: 0}, 3, Style{Weight: 1})
	if h1 == h2 {
		t.Fatal("handles must be unique")
	}
	if c.Live() != 2 {
		t.Fatalf("live = %d, want 2", c.Live())
	}

	c.SetRadius(h2, 5)
	if c.shapes[h2].radius != 5 {
		t.Fatalf("radius = %v, want 5", c.shapes[h2].radius)
	}

	op := 0.4
	c.SetStyle(h1, StylePatch{Opacity: &op})
	if c.shapes[h1].style.Opacity != 0.4 {
		t.Fatalf("opacity = %v, want 0.4", c.shapes[h1].style.Opacity)
	}

	c.Remove(h1)
	c.Remove(h1) // second remove is a no-op
	if c.Live() != 1 {
		t.Fatalf("live after remove = %d, want 1", c.Live())
	}
	if len(c.order) != 1 || c.order[0] != h2 {
		t.Fatalf("draw order not compacted: %v", c.order)
	}
}

func TestCanvasLineCopiesPoints(t *testing.T) {
	c := NewCanvas(720, 360)
	pts := []GeoPoint{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}}
	h := c.Line(pts, Style{Weight: 1})
	pts[0].Lat = 99
	if c.shapes[h].points[0].Lat != 0 {
		t.Fatal("Line must copy its points slice")
	}
}
