// Package snapshot draws interaction lines to a PNG image
package snapshot

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"

	"chemint/internal/domain"
)

var ErrNothingToDraw = errors.New("no lines to draw")

// Config controls the image size and look
type Config struct {
	Width, Height int
	Margin        float64 // pixels around the drawing
	AtomRadius    float64 // pixels
	LineWidth     float64 // pixels
	Labels        bool    // write residue labels next to partner atoms
}

// DefaultConfig is an 800x800 image with labels
func DefaultConfig() Config {
	return Config{Width: 800, Height: 800, Margin: 48, AtomRadius: 5, LineWidth: 2, Labels: true}
}

// Scene is what gets drawn: interaction lines plus optional context atoms
type Scene struct {
	Title   string
	Lines   []domain.Line
	Context []domain.Atom // drawn grey behind the lines
}

// projection maps structure coordinates onto the XY image plane
type projection struct {
	minX, minY float64
	scale      float64
	cfg        Config
}

func newProjection(points [][2]float64, cfg Config) projection {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	rx, ry := maxX-minX, maxY-minY
	avail := math.Min(float64(cfg.Width), float64(cfg.Height)) - 2*cfg.Margin
	scale := 1.0
	if span := math.Max(rx, ry); span > 0 {
		scale = avail / span
	}
	return projection{minX: minX, minY: minY, scale: scale, cfg: cfg}
}

func (p projection) point(a domain.Atom) (float64, float64) {
	x := p.cfg.Margin + p.scale*(a.X-p.minX)
	y := float64(p.cfg.Height) - p.cfg.Margin - p.scale*(a.Y-p.minY)
	return x, y
}

// Render writes the scene as PNG
func Render(w io.Writer, scene Scene, cfg Config) error {
	if len(scene.Lines) == 0 {
		return ErrNothingToDraw
	}

	var points [][2]float64
	for _, l := range scene.Lines {
		points = append(points,
			[2]float64{l.From.Atom.X, l.From.Atom.Y},
			[2]float64{l.To.Atom.X, l.To.Atom.Y})
	}
	proj := newProjection(points, cfg)

	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Context atoms outside the frame are skipped
	dc.SetRGB(0.82, 0.82, 0.82)
	for _, a := range scene.Context {
		x, y := proj.point(a)
		if x < 0 || y < 0 || x > float64(cfg.Width) || y > float64(cfg.Height) {
			continue
		}
		dc.DrawCircle(x, y, cfg.AtomRadius*0.6)
		dc.Fill()
	}

	dc.SetLineWidth(cfg.LineWidth)
	dc.SetDash(6, 4)
	for _, l := range scene.Lines {
		x1, y1 := proj.point(l.From.Atom)
		x2, y2 := proj.point(l.To.Atom)
		dc.SetRGB255(int(l.Color.R), int(l.Color.G), int(l.Color.B))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
	dc.SetDash()

	labelled := make(map[string]bool)
	for _, l := range scene.Lines {
		for i, ep := range []domain.Endpoint{l.From, l.To} {
			x, y := proj.point(ep.Atom)
			if i == 0 {
				dc.SetRGB(0.1, 0.1, 0.1)
			} else {
				dc.SetRGB(0.45, 0.45, 0.45)
			}
			dc.DrawCircle(x, y, cfg.AtomRadius)
			dc.Fill()

			res := ep.Atom.ResidueKey()
			if cfg.Labels && i == 1 && !labelled[res] {
				labelled[res] = true
				dc.DrawStringAnchored(fmt.Sprintf("%s%d", ep.Atom.ResName, ep.Atom.ResSeq), x+cfg.AtomRadius+2, y, 0, 0.5)
			}
		}
	}

	if scene.Title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(scene.Title, float64(cfg.Width)/2, cfg.Margin/2, 0.5, 0.5)
	}

	return png.Encode(w, dc.Image())
}

// RenderFile writes the scene to a PNG file
func RenderFile(path string, scene Scene, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := Render(f, scene, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
