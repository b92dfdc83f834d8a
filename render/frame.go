// Package render draws the simulation into PNG frames.
package render

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/systems"
)

// World is the read-only view of a simulation a frame is drawn from.
type World interface {
	Width() int
	Height() int
	Tick() int
	Grass() []game.GrassView
	Rivers() []game.River
	Animals() []game.AnimalView
}

// Renderer draws frames of a fixed map size.
type Renderer struct {
	cfg   *config.Config
	tiles *TileSet // nil draws markers for every species
}

// NewRenderer creates a renderer. tiles may be nil.
func NewRenderer(cfg *config.Config, tiles *TileSet) *Renderer {
	return &Renderer{cfg: cfg, tiles: tiles}
}

// Frame draws the world: background, grass, rivers, then animals with the
// dead below the living.
func (r *Renderer) Frame(w World) image.Image {
	dc := gg.NewContext(w.Width()+1, w.Height()+1)
	rc := r.cfg.Render

	dc.SetHexColor(rc.Background)
	dc.Clear()

	dc.SetHexColor(rc.GrassColor)
	for _, g := range w.Grass() {
		radius := max(float64(systems.GrassWidth(g.Amount, r.cfg))/2, 2)
		dc.DrawCircle(float64(g.X), float64(g.Y), radius)
		dc.Fill()
	}

	dc.SetHexColor(rc.RiverColor)
	dc.SetLineWidth(rc.RiverWidth)
	dc.SetLineCapRound()
	for _, river := range w.Rivers() {
		for i := 0; i < river.NumSegments(); i++ {
			a, b := river.Segment(i)
			dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
		}
		dc.Stroke()
	}

	animals := w.Animals()
	for _, a := range animals {
		if a.Dead {
			r.drawAnimal(dc, a)
		}
	}
	for _, a := range animals {
		if !a.Dead {
			r.drawAnimal(dc, a)
		}
	}

	return dc.Image()
}

func (r *Renderer) drawAnimal(dc *gg.Context, a game.AnimalView) {
	rc := r.cfg.Render
	x, y := float64(a.X), float64(a.Y)

	if rc.ShowVision && !a.Dead {
		dc.SetRGBA(0, 0, 0, 0.15)
		dc.SetLineWidth(1)
		dc.DrawCircle(x, y, float64(a.Detection))
		dc.Stroke()
	}

	if r.tiles != nil {
		if tile, ok := r.tiles.Get(a.Species, a.Dead); ok {
			dc.DrawImageAnchored(tile, a.X, a.Y, 0.5, 0.5)
			return
		}
	}

	// Fallback marker: diet colour, gray once dead.
	if a.Dead {
		dc.SetRGB(0.45, 0.45, 0.45)
	} else {
		cr, cg, cb := a.Diet.Color()
		dc.SetRGB255(int(cr), int(cg), int(cb))
	}
	dc.DrawCircle(x, y, rc.MarkerSize)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
}

// WriteFrame renders w and saves it as frame_<tick>.png in dir.
func (r *Renderer) WriteFrame(dir string, w World) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", w.Tick()))
	if err := gg.SavePNG(path, r.Frame(w)); err != nil {
		return "", fmt.Errorf("saving frame: %w", err)
	}
	return path, nil
}
