package radar

import (
	"image/color"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	mapWidth  = 960
	mapHeight = 480
)

// Game is the ebiten host: it owns the engine, the map canvas, the HUD
// and the optional inputs (live feed channel, demo generator), and runs
// them all on ebiten's single update goroutine.
type Game struct {
	engine *Engine
	canvas *Canvas
	hud    *HUD

	feed <-chan AttackEvent
	demo *Demo

	demoOn   bool
	prevKeys map[ebiten.Key]bool
}

// NewGame wires the host. feed may be nil (demo-only mode); demo may be
// nil (feed-only mode).
func NewGame(sounds Sounds, feed <-chan AttackEvent, demo *Demo, demoOn bool) *Game {
	canvas := NewCanvas(mapWidth, mapHeight)
	hud := NewHUD()
	return &Game{
		engine:   NewEngine(canvas, sounds, hud),
		canvas:   canvas,
		hud:      hud,
		feed:     feed,
		demo:     demo,
		demoOn:   demoOn,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

// Engine exposes the underlying engine for the host binary.
func (g *Game) Engine() *Engine { return g.engine }

func (g *Game) handleKeys() {
	currentKeys := make(map[ebiten.Key]bool)

	currentKeys[ebiten.KeyR] = ebiten.IsKeyPressed(ebiten.KeyR)
	if currentKeys[ebiten.KeyR] && !g.prevKeys[ebiten.KeyR] {
		report := g.engine.DebugReport()
		if err := clipboard.WriteAll(report); err != nil {
			log.Printf("clipboard copy failed: %v", err)
		} else {
			log.Printf("debug report copied (%d bytes)", len(report))
		}
	}

	currentKeys[ebiten.KeyD] = ebiten.IsKeyPressed(ebiten.KeyD)
	if currentKeys[ebiten.KeyD] && !g.prevKeys[ebiten.KeyD] && g.demo != nil {
		g.demoOn = !g.demoOn
		log.Printf("demo traffic: %v", g.demoOn)
	}

	currentKeys[ebiten.KeyX] = ebiten.IsKeyPressed(ebiten.KeyX)
	if currentKeys[ebiten.KeyX] && !g.prevKeys[ebiten.KeyX] {
		g.engine.Reset()
		log.Printf("board reset")
	}

	g.prevKeys = currentKeys
}

func (g *Game) Update() error {
	g.handleKeys()

	now := time.Now()

	// Drain whatever the feed has buffered; never block the frame.
	if g.feed != nil {
	drain:
		for {
			select {
			case ev, ok := <-g.feed:
				if !ok {
					g.feed = nil
					break drain
				}
				g.engine.HandleAttackEvent(ev)
			default:
				break drain
			}
		}
	}

	if g.demoOn && g.demo != nil {
		if ev, ok := g.demo.Poll(now); ok {
			g.engine.HandleAttackEvent(ev)
		}
	}

	g.engine.Tick()
	return nil
}

var (
	seaColor       = color.RGBA{R: 6, G: 9, B: 14, A: 255}
	graticuleColor = color.RGBA{R: 24, G: 38, B: 52, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(seaColor)

	// Graticule every 30 degrees.
	for lng := -180.0; lng <= 180; lng += 30 {
		x, _ := g.canvas.project(GeoPoint{Lat: 0, Lng: lng})
		vector.StrokeLine(screen, x, 0, x, mapHeight, 1.0, graticuleColor, false)
	}
	for lat := -90.0; lat <= 90; lat += 30 {
		_, y := g.canvas.project(GeoPoint{Lat: lat, Lng: 0})
		vector.StrokeLine(screen, 0, y, mapWidth, y, 1.0, graticuleColor, false)
	}

	g.canvas.Draw(screen, 0, 0)
	g.hud.Draw(screen, mapWidth, mapHeight)

	ebitenutil.DebugPrintAt(screen, "[R] report  [D] demo  [X] reset", 6, 2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return mapWidth + hudPanelWidth, mapHeight
}
