// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"
)

// fontURL is the virtual file the HUD font is registered under
const fontURL = "spacerun/go-regular.ttf"

// Sprite kinds
const (
	SpriteShip    = "ship"
	SpriteRock    = "rock"
	SpriteMissile = "missile"
)

var (
	colorShip    = color.RGBA{230, 230, 255, 255}
	colorRock    = color.RGBA{150, 140, 130, 255}
	colorMissile = color.RGBA{255, 220, 60, 255}
	colorWreck   = color.RGBA{255, 60, 60, 255}
	colorHUD     = color.RGBA{120, 255, 120, 255}

	colorBackground = color.RGBA{8, 8, 20, 255}
)

// AssetManager builds the procedural sprites and the HUD font
type AssetManager struct {
	images  map[string]*image.NRGBA
	sprites map[string]common.Drawable
	font    *common.Font
}

// NewAssetManager generates the sprite images in white; the renderer tints
// them. Textures are only uploaded by Load, which needs a live GL context.
func NewAssetManager() *AssetManager {
	am := &AssetManager{
		images:  make(map[string]*image.NRGBA),
		sprites: make(map[string]common.Drawable),
	}
	am.images[SpriteShip] = am.patternImage(shipPattern(20, 25), color.White)
	am.images[SpriteRock] = am.patternImage(rockPattern(24), color.White)
	am.images[SpriteMissile] = am.patternImage(solidPattern(4, 6), color.White)
	return am
}

// Preload registers the embedded font with the engo file loader
func (am *AssetManager) Preload() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("load hud font: %w", err)
	}
	return nil
}

// Load uploads every sprite image and prepares the HUD font
func (am *AssetManager) Load(fontSize float64) error {
	for name, img := range am.images {
		am.sprites[name] = common.NewTextureSingle(common.NewImageObject(img))
	}

	font := &common.Font{URL: fontURL, FG: colorHUD, Size: fontSize}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("create hud font: %w", err)
	}
	am.font = font
	return nil
}

// Sprite returns the texture for kind, or nil before Load
func (am *AssetManager) Sprite(kind string) common.Drawable {
	return am.sprites[kind]
}

// Image returns the generated image for kind
func (am *AssetManager) Image(kind string) *image.NRGBA {
	return am.images[kind]
}

// Font returns the HUD font, or nil before Load
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// patternImage paints the set cells of pattern in c on a transparent image
func (am *AssetManager) patternImage(pattern [][]int, c color.Color) *image.NRGBA {
	height := len(pattern)
	width := 0
	if height > 0 {
		width = len(pattern[0])
	}
	img := am.createBaseImage(width, height)
	am.drawPatternOnImage(img, pattern, c)
	return img
}

// createBaseImage creates a transparent image with the given dimensions
func (am *AssetManager) createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Transparent}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage sets every pixel whose pattern cell is 1
func (am *AssetManager) drawPatternOnImage(img *image.NRGBA, pattern [][]int, c color.Color) {
	bounds := img.Bounds()
	for y, row := range pattern {
		if y >= bounds.Dy() {
			break
		}
		for x, pixel := range row {
			if x >= bounds.Dx() {
				break
			}
			if pixel == 1 {
				img.Set(x, y, c)
			}
		}
	}
}

// shipPattern is an upward pointing wedge with a notch at the tail
func shipPattern(width, height int) [][]int {
	pattern := make([][]int, height)
	for y := range pattern {
		pattern[y] = make([]int, width)
		half := float64(width) / 2 * float64(y+1) / float64(height)
		for x := range pattern[y] {
			dx := float64(x) + 0.5 - float64(width)/2
			if dx < 0 {
				dx = -dx
			}
			if dx > half {
				continue
			}
			if y > height*4/5 && dx < float64(width)/6 {
				continue
			}
			pattern[y][x] = 1
		}
	}
	return pattern
}

// rockPattern is a filled disc
func rockPattern(size int) [][]int {
	pattern := make([][]int, size)
	r := float64(size) / 2
	for y := range pattern {
		pattern[y] = make([]int, size)
		for x := range pattern[y] {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

func solidPattern(width, height int) [][]int {
	pattern := make([][]int, height)
	for y := range pattern {
		pattern[y] = make([]int, width)
		for x := range pattern[y] {
			pattern[y][x] = 1
		}
	}
	return pattern
}
