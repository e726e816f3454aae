package radar

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the ebiten-backed rendering surface: an equirectangular world
// rectangle that projects lat/lng shapes into pixels. It implements Surface
// and is drawn once per frame after the engine tick.
type Canvas struct {
	width  int // pixel size of the world rectangle
	height int

	shapes map[Handle]*canvasShape
	order  []Handle // insertion order; lines under circles under markers is not enforced
	next   Handle
}

type shapeKind int

const (
	kindLine shapeKind = iota
	kindCircle
	kindMarker
)

type canvasShape struct {
	kind   shapeKind
	points []GeoPoint // lines
	center GeoPoint   // circles and markers
	radius float64    // geographic degrees (circles)
	style  Style
}

// NewCanvas creates a canvas for a world rectangle of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		shapes: make(map[Handle]*canvasShape),
	}
}

func (c *Canvas) add(sh *canvasShape) Handle {
	c.next++
	c.shapes[c.next] = sh
	c.order = append(c.order, c.next)
	return c.next
}

func (c *Canvas) Line(points []GeoPoint, st Style) Handle {
	pts := make([]GeoPoint, len(points))
	copy(pts, points)
	return c.add(&canvasShape{kind: kindLine, points: pts, style: st})
}

func (c *Canvas) Circle(center GeoPoint, radius float64, st Style) Handle {
	return c.add(&canvasShape{kind: kindCircle, center: center, radius: radius, style: st})
}

func (c *Canvas) Marker(at GeoPoint, st Style) Handle {
	return c.add(&canvasShape{kind: kindMarker, center: at, style: st})
}

func (c *Canvas) SetStyle(h Handle, patch StylePatch) {
	if sh, ok := c.shapes[h]; ok {
		patch.apply(&sh.style)
	}
}

func (c *Canvas) SetPosition(h Handle, at GeoPoint) {
	if sh, ok := c.shapes[h]; ok {
		sh.center = at
	}
}

func (c *Canvas) SetRadius(h Handle, radius float64) {
	if sh, ok := c.shapes[h]; ok {
		sh.radius = radius
	}
}

func (c *Canvas) Remove(h Handle) {
	if _, ok := c.shapes[h]; !ok {
		return
	}
	delete(c.shapes, h)
	for i, id := range c.order {
		if id == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Live returns the number of shapes currently held.
func (c *Canvas) Live() int {
	return len(c.shapes)
}

// project maps a GeoPoint to pixel coordinates inside the world rectangle.
func (c *Canvas) project(p GeoPoint) (float32, float32) {
	x := (p.Lng + 180) / 360 * float64(c.width)
	y := (90 - p.Lat) / 180 * float64(c.height)
	return float32(x), float32(y)
}

// degToPx converts a geographic-degree radius to pixels.
func (c *Canvas) degToPx(deg float64) float32 {
	return float32(deg / 360 * float64(c.width))
}

// fade applies an opacity to a colour the way the rest of the codebase
// does: alpha only, RGB untouched.
func fade(col color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	col.A = uint8(opacity * 255)
	return col
}

// Draw renders every live shape at the given pixel offset.
func (c *Canvas) Draw(screen *ebiten.Image, offX, offY float32) {
	for _, h := range c.order {
		sh := c.shapes[h]
		switch sh.kind {
		case kindLine:
			col := fade(sh.style.Color, sh.style.Opacity)
			for i := 0; i+1 < len(sh.points); i++ {
				x1, y1 := c.project(sh.points[i])
				x2, y2 := c.project(sh.points[i+1])
				vector.StrokeLine(screen, offX+x1, offY+y1, offX+x2, offY+y2, sh.style.Weight, col, true)
			}
		case kindCircle:
			x, y := c.project(sh.center)
			r := c.degToPx(sh.radius)
			if sh.style.FillOpacity > 0 {
				vector.FillCircle(screen, offX+x, offY+y, r, fade(sh.style.FillColor, sh.style.FillOpacity), true)
			}
			vector.StrokeCircle(screen, offX+x, offY+y, r, sh.style.Weight, fade(sh.style.Color, sh.style.Opacity), true)
		case kindMarker:
			x, y := c.project(sh.center)
			col := fade(sh.style.Color, sh.style.Opacity)
			glow := fade(sh.style.Color, sh.style.Opacity*0.3)
			vector.FillCircle(screen, offX+x, offY+y, sh.style.Radius*2.2, glow, true)
			vector.FillCircle(screen, offX+x, offY+y, sh.style.Radius, col, true)
		}
	}
}
