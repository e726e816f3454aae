package radar

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPanelWidth = 230
	hudLineHeight = 14
	hudPad        = 8

	surgeBarHeight = 10
	tickerHeight   = 18
)

// HUD is the side panel plus bottom ticker. It implements Display: the
// engine publishes counter strings by id and the HUD lays them out each
// frame. Unknown ids are stored and ignored at draw time.
type HUD struct {
	texts map[string]string
}

func NewHUD() *HUD {
	return &HUD{texts: make(map[string]string)}
}

func (h *HUD) SetText(id, text string) {
	h.texts[id] = text
}

func (h *HUD) get(id string) string {
	if v, ok := h.texts[id]; ok {
		return v
	}
	return "-"
}

// intVal parses a numeric counter, defaulting to 0 on anything odd.
func (h *HUD) intVal(id string) int {
	n, err := strconv.Atoi(h.texts[id])
	if err != nil {
		return 0
	}
	return n
}

func severityLabelColor(s Severity) color.RGBA {
	c := s.Color()
	// Lighten towards white so labels survive the dark background.
	c.R = uint8(int(c.R)/2 + 128)
	c.G = uint8(int(c.G)/2 + 128)
	c.B = uint8(int(c.B)/2 + 128)
	return c
}

func surgeColor(level int) color.RGBA {
	switch {
	case level >= 70:
		return color.RGBA{R: 255, G: 0, B: 51, A: 255}
	case level >= 40:
		return color.RGBA{R: 255, G: 170, B: 0, A: 255}
	default:
		return color.RGBA{R: 0, G: 255, B: 255, A: 255}
	}
}

// Draw renders the panel along the right edge and the intel ticker along
// the bottom. panelX is the left edge of the panel; screenH the full
// screen height.
func (h *HUD) Draw(screen *ebiten.Image, panelX, screenH int) {
	vector.FillRect(screen, float32(panelX), 0, hudPanelWidth, float32(screenH), color.RGBA{R: 8, G: 10, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(screenH), 1.0, color.RGBA{R: 40, G: 60, B: 80, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, float32(panelX), 0, hudPanelWidth, 16, color.RGBA{R: 15, G: 25, B: 35, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "THREAT BOARD", panelX+hudPad, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+hudPanelWidth), 16, 1.0, color.RGBA{R: 40, G: 70, B: 100, A: 200}, false)

	x := panelX + hudPad
	y := 24

	// Per-severity counters, coloured by severity.
	face := basicfont.Face7x13
	sevRows := []struct {
		label string
		id    string
		sev   Severity
	}{
		{"LOW", "low", SeverityLow},
		{"MED", "med", SeverityMedium},
		{"HIGH", "high", SeverityHigh},
		{"CRIT", "crit", SeverityCritical},
	}
	for _, row := range sevRows {
		line := fmt.Sprintf("%-5s %s", row.label, h.get(row.id))
		text.Draw(screen, line, face, x, y+10, severityLabelColor(row.sev))
		y += hudLineHeight
	}
	y += 4
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("total    %s", h.get("total")), x, y)
	y += hudLineHeight
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("velocity %s", h.get("velocity")), x, y)
	y += hudLineHeight
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %s  pressure %s", h.get("level"), h.get("pressure")), x, y)
	y += hudLineHeight + 6

	// Surge meter: label, then a bar that changes colour as it climbs.
	surge := h.intVal("surge")
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("surge %d", surge), x, y)
	y += hudLineHeight
	barW := hudPanelWidth - 2*hudPad
	vector.StrokeRect(screen, float32(x), float32(y), float32(barW), surgeBarHeight, 1.0, color.RGBA{R: 60, G: 80, B: 100, A: 255}, false)
	fillW := float32(barW-2) * float32(surge) / 100
	if fillW > 0 {
		vector.FillRect(screen, float32(x+1), float32(y+1), fillW, surgeBarHeight-2, surgeColor(surge), false)
	}
	y += surgeBarHeight + 10

	// Top origins block, one per line.
	ebitenutil.DebugPrintAt(screen, "-- TOP ORIGINS --", x, y)
	y += hudLineHeight
	origins := h.get("origins")
	if origins == "-" || origins == "" {
		ebitenutil.DebugPrintAt(screen, "(none)", x, y)
		y += hudLineHeight
	} else {
		for _, line := range strings.Split(origins, "\n") {
			ebitenutil.DebugPrintAt(screen, line, x, y)
			y += hudLineHeight
		}
	}

	// Intel ticker along the bottom, full width.
	ty := screenH - tickerHeight
	vector.FillRect(screen, 0, float32(ty), float32(panelX+hudPanelWidth), tickerHeight, color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, 0, float32(ty), float32(panelX+hudPanelWidth), float32(ty), 1.0, color.RGBA{R: 40, G: 60, B: 80, A: 200}, false)
	intel := h.get("intel")
	if intel != "-" {
		text.Draw(screen, intel, face, hudPad, ty+13, color.RGBA{R: 120, G: 200, B: 255, A: 255})
	}
}
