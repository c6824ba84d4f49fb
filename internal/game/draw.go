package game

import (
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
	"github.com/iburimskiy/luminar-weave/internal/dial"
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawStars(screen)
	g.drawHeader(screen)
	g.drawDials(screen)
	g.drawFooter(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	// Deep-space gradient drifting very slowly.
	const band = 4
	for y := 0; y < g.height; y += band {
		ratio := float64(y) / float64(g.height)
		r := uint8(6 + 6*math.Sin(g.time*0.05+ratio*math.Pi))
		g_val := uint8(8 + 5*math.Cos(g.time*0.03+ratio*math.Pi))
		b := uint8(24 + 12*math.Sin(g.time*0.07+ratio*math.Pi))
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), band, color.RGBA{R: r, G: g_val, B: b, A: 255}, false)
	}
}

func (g *Game) drawStars(screen *ebiten.Image) {
	for _, s := range g.stars.Stars() {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(255 * s.Opacity)}
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), c, true)
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	title := g.cfg.Window.Title
	printCentered(screen, title, g.width/2, 28)
	printCentered(screen, "Witness the stellar dance, and find your echo in infinity.", g.width/2, 52)

	if g.clock.Jumped() && !g.progress.Instant.IsZero() {
		msg := "Viewing " + g.progress.Instant.Format("Monday, January 2, 2006") + " | N: back to now"
		printCentered(screen, msg, g.width/2, 78)
	}
}

func (g *Game) drawDials(screen *ebiten.Image) {
	stroke := float32(g.cfg.Dials.Stroke)
	glow := clamp01(g.glow.Value())

	for i, r := range g.readings {
		if i >= len(g.cells) {
			break
		}
		c := g.cells[i]
		cx, cy, radius := float32(c.CX), float32(c.CY), float32(c.Radius)

		vector.StrokeCircle(screen, cx, cy, radius, stroke, dial.TrackColor, true)

		if glow > 0.01 {
			hue := (g.colorPhase + float64(i)*0.1) * 360
			hr, hg, hb := hsvToRgb(hue, 0.6, 1.0)
			halo := color.NRGBA{R: hr, G: hg, B: hb, A: uint8(200 * glow)}
			vector.StrokeCircle(screen, cx, cy, radius+stroke, 2+4*float32(glow), halo, true)
		}

		g.drawArc(screen, c, r, stroke)

		printCentered(screen, r.Percent, int(c.CX), int(c.CY)-8)
		captionY := int(c.CY+c.Radius) + int(stroke) + 4
		printCentered(screen, r.Value, int(c.CX), captionY)
		printCentered(screen, strings.ToUpper(r.Label), int(c.CX), captionY+16)
	}
}

// drawArc strokes the progress arc with its colour fading from full to half
// opacity along the sweep, and rounds both ends.
func (g *Game) drawArc(screen *ebiten.Image, c dial.Cell, r dial.Reading, stroke float32) {
	pts := dial.Arc(c.CX, c.CY, c.Radius, r.Progress, g.cfg.Dials.Segments)
	if len(pts) < 2 {
		return
	}
	last := len(pts) - 1
	for j := 1; j <= last; j++ {
		alpha := 1 - 0.5*float64(j)/float64(last)
		clr := fade(r.Color, alpha)
		vector.StrokeLine(screen, pts[j-1].X, pts[j-1].Y, pts[j].X, pts[j].Y, stroke, clr, true)
		vector.DrawFilledCircle(screen, pts[j].X, pts[j].Y, stroke/2, clr, true)
	}
	vector.DrawFilledCircle(screen, pts[0].X, pts[0].Y, stroke/2, fade(r.Color, 1), true)
}

const footerOffset = 58

func (g *Game) drawFooter(screen *ebiten.Image) {
	y := g.height - footerOffset
	if !g.progress.Instant.IsZero() {
		printCentered(screen, "Live Time: "+dial.LiveTime(g.progress.Instant), g.width/2, y)
		printCentered(screen, footerDetail(g.progress), g.width/2, y+18)
	}

	status := "D: pick date  N: now  F: fullscreen  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, g.height-20)
}

// footerDetail summarises the longer cycles in one line.
func footerDetail(p calendar.Progress) string {
	return p.Weekday.String() + ", day " + strconv.Itoa(p.DayOfYear) + " of " + strconv.Itoa(p.DaysInYear) +
		", " + strconv.Itoa(p.Century) + calendar.OrdinalSuffix(p.Century) + " century, " +
		p.Instant.Format(time.DateOnly)
}
