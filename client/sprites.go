package client

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"tankwar/game"
)

// hullSVG is a top-down tank hull pointing up: two tracks, the body and an
// engine deck. %s is the body colour.
const hullSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 52 50">
  <rect x="0" y="0" width="12" height="50" fill="#444"/>
  <rect x="40" y="0" width="12" height="50" fill="#444"/>
  <rect x="6" y="0" width="40" height="50" fill="%s"/>
  <rect x="12" y="38" width="28" height="8" fill="#000" fill-opacity="0.25"/>
  <path d="M2 4 H10 M2 12 H10 M2 20 H10 M2 28 H10 M2 36 H10 M2 44 H10 M42 4 H50 M42 12 H50 M42 20 H50 M42 28 H50 M42 36 H50 M42 44 H50" stroke="#2a2a2a" stroke-width="2"/>
</svg>`

// Hull sprite extents in playfield units, including the tracks
const (
	hullSpriteWidth  = game.TankWidth + 12
	hullSpriteHeight = game.TankHeight
)

// spriteCache rasterizes one hull sprite per body colour
type spriteCache struct {
	logger *log.Logger
	hulls  map[color.NRGBA]*ebiten.Image
	failed bool
}

func newSpriteCache(logger *log.Logger) *spriteCache {
	return &spriteCache{
		logger: logger,
		hulls:  make(map[color.NRGBA]*ebiten.Image),
	}
}

// Hull returns the sprite for a body colour, or nil if rasterizing failed.
// Callers fall back to flat rectangles.
func (c *spriteCache) Hull(clr color.NRGBA) *ebiten.Image {
	if img, ok := c.hulls[clr]; ok {
		return img
	}
	if c.failed {
		return nil
	}

	svg := fmt.Sprintf(hullSVG, hexColor(clr))
	img, err := svgToImage(svg, int(hullSpriteWidth*2), int(hullSpriteHeight*2))
	if err != nil {
		c.logger.Warn("hull sprite unavailable, drawing rectangles", "err", err)
		c.failed = true
		return nil
	}

	if os.Getenv("DEBUG_SPRITES") == "1" {
		saveDebugPNG(img, fmt.Sprintf("debug_hull_%s.png", strings.TrimPrefix(hexColor(clr), "#")))
	}

	sprite := ebiten.NewImageFromImage(img)
	c.hulls[clr] = sprite
	return sprite
}

// svgToImage rasterizes SVG source at the given pixel size
func svgToImage(svg string, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func saveDebugPNG(img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Warn("failed to create debug png", "file", filename, "err", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Warn("failed to encode debug png", "file", filename, "err", err)
	}
}
