// pkg/render/ascii.go
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// ASCIIRenderer draws the field as plain text with ANSI clear codes, for
// terminals where the full-screen client is not available.
type ASCIIRenderer struct {
	out    io.Writer
	width  int
	height int
	buffer [][]rune
	scaleX float64
	scaleY float64
	status string
}

// NewASCIIRenderer creates a renderer of cols x rows cells covering a field
// of fieldWidth x fieldHeight.
func NewASCIIRenderer(out io.Writer, cols, rows int, fieldWidth, fieldHeight float64) *ASCIIRenderer {
	buffer := make([][]rune, rows)
	for i := range buffer {
		buffer[i] = make([]rune, cols)
	}

	return &ASCIIRenderer{
		out:    out,
		width:  cols,
		height: rows,
		buffer: buffer,
		scaleX: fieldWidth / float64(cols),
		scaleY: fieldHeight / float64(rows),
	}
}

// worldToScreen converts field coordinates to a cell
func (r *ASCIIRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(pos.X / r.scaleX), int(pos.Y / r.scaleY)
}

func (r *ASCIIRenderer) set(x, y int, c rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = c
	}
}

// Clear implements Renderer
func (r *ASCIIRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderObstacle implements Renderer
func (r *ASCIIRenderer) RenderObstacle(obstacle engine.ObstacleState) {
	c := '#'
	if obstacle.Hit {
		c = 'X'
	}
	x0, y0 := r.worldToScreen(obstacle.Bounds.Position())
	x1, y1 := r.worldToScreen(physics.Vector2D{X: obstacle.Bounds.Right(), Y: obstacle.Bounds.Bottom()})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, c)
		}
	}
}

// RenderProjectile implements Renderer
func (r *ASCIIRenderer) RenderProjectile(projectile engine.ProjectileState) {
	x, y := r.worldToScreen(projectile.Position)
	r.set(x, y, '.')
}

// RenderShip implements Renderer
func (r *ASCIIRenderer) RenderShip(ship engine.ShipState) {
	center := ship.Position.Add(physics.Vector2D{X: ship.Width / 2, Y: ship.Height / 2})
	x, y := r.worldToScreen(center)
	symbol := HeadingGlyph(ship.Heading)
	if ship.Crashed {
		symbol = '*'
	}
	r.set(x, y, symbol)
}

// RenderHUD implements HUDRenderer
func (r *ASCIIRenderer) RenderHUD(hud engine.HUD) {
	r.status = FormatHUD(hud)
}

// RenderSummary implements SummaryRenderer
func (r *ASCIIRenderer) RenderSummary(summary engine.Summary) error {
	_, err := fmt.Fprintf(r.out, "\n%s\n", FormatSummary(summary))
	return err
}

// Present implements Renderer
func (r *ASCIIRenderer) Present() error {
	var b strings.Builder
	b.WriteString("\033[H\033[2J")
	b.WriteString("+" + strings.Repeat("-", r.width) + "+\n")
	for y := range r.buffer {
		b.WriteByte('|')
		b.WriteString(string(r.buffer[y]))
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", r.width) + "+\n")
	b.WriteString(r.status)
	b.WriteByte('\n')

	_, err := io.WriteString(r.out, b.String())
	return err
}

// HeadingGlyph picks an arrow for the heading, 0 degrees pointing up
func HeadingGlyph(heading int) rune {
	h := ((heading % 360) + 360) % 360
	switch {
	case h < 45 || h >= 315:
		return '^'
	case h < 135:
		return '>'
	case h < 225:
		return 'v'
	default:
		return '<'
	}
}

// FormatHUD renders the status line shared by the text clients
func FormatHUD(hud engine.HUD) string {
	line := fmt.Sprintf("FUEL %3d  MISSILES %2d  LIVES %d  SCORE %d  TIME %2d",
		hud.Fuel, hud.Ammo, hud.Health, hud.Score, hud.TimeLeft)
	if hud.OutOfFuel {
		line += "  OUT OF FUEL"
	}
	return line
}

// FormatSummary renders the game over line shared by the text clients
func FormatSummary(summary engine.Summary) string {
	return fmt.Sprintf("GAME OVER (%s)  Survived %d seconds  Final score %d",
		summary.Reason, summary.ElapsedSeconds, summary.FinalScore)
}
