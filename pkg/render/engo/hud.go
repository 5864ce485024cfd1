// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/render"
)

const (
	hudFontSize = 18
	hudMargin   = 10
	hudZIndex   = 100
)

// restartHint is shown under the game over summary
const restartHint = "Press R to play again or Esc to quit"

type textEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	text string
}

// HUDSystem keeps the status line and the game over overlay in sync with
// the display
type HUDSystem struct {
	system  spriteSystem
	font    *common.Font
	display *Display

	status  *textEntity
	summary *textEntity
	hint    *textEntity
}

// NewHUDSystem creates the HUD text entities. With a nil font nothing is
// drawn, which is what happens when the font failed to load.
func NewHUDSystem(system spriteSystem, font *common.Font, display *Display) *HUDSystem {
	hud := &HUDSystem{
		system:  system,
		font:    font,
		display: display,
	}
	hud.status = hud.newText(hudMargin, hudMargin)
	hud.summary = hud.newText(hudMargin, hudMargin+3*hudFontSize)
	hud.hint = hud.newText(hudMargin, hudMargin+5*hudFontSize)
	return hud
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the HUD text from the display
func (hud *HUDSystem) Update(dt float32) {
	if hud.display == nil {
		return
	}
	status, summary := hud.display.Status()
	statusText, summaryText, hintText := hudLines(status, summary)
	hud.setText(hud.status, statusText)
	hud.setText(hud.summary, summaryText)
	hud.setText(hud.hint, hintText)
	if summary != nil {
		hud.centerOverlay()
	}
}

// hudLines returns the status line and, once the game is over, the summary
// and the restart hint
func hudLines(status engine.HUD, summary *engine.Summary) (string, string, string) {
	line := render.FormatHUD(status)
	if summary == nil {
		return line, "", ""
	}
	return line, render.FormatSummary(*summary), restartHint
}

func (hud *HUDSystem) newText(x, y float32) *textEntity {
	t := &textEntity{BasicEntity: ecs.NewBasic()}
	t.Position = engo.Point{X: x, Y: y}
	t.Color = color.White
	t.Hidden = true
	t.SetZIndex(hudZIndex)
	hud.system.Add(&t.BasicEntity, &t.RenderComponent, &t.SpaceComponent)
	return t
}

func (hud *HUDSystem) setText(t *textEntity, text string) {
	if t.text == text {
		return
	}
	t.text = text
	if hud.font == nil || text == "" {
		t.Hidden = true
		return
	}
	t.Drawable = common.Text{Font: hud.font, Text: text}
	t.Width = t.Drawable.Width()
	t.Height = t.Drawable.Height()
	t.Hidden = false
}

// centerOverlay places the summary and the hint in the middle of the canvas
func (hud *HUDSystem) centerOverlay() {
	w, h := engo.GameWidth(), engo.GameHeight()
	if w <= 0 || h <= 0 {
		return
	}
	hud.summary.Position = engo.Point{X: (w - hud.summary.Width) / 2, Y: h/2 - hud.summary.Height}
	hud.hint.Position = engo.Point{X: (w - hud.hint.Width) / 2, Y: h/2 + hud.hint.Height/2}
}
