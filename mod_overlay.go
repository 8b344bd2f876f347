package lantern

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type OverlayVertex struct {
	Pos   [2]float32 `lantern:"layout" format:"float32x2" location:"0"`
	UV    [2]float32 `lantern:"layout" format:"float32x2" location:"1"`
	Color [4]float32 `lantern:"layout" format:"float32x4" location:"2"`
}

type glyphInfo struct {
	uvMin [2]float32
	uvMax [2]float32
	size  [2]float32
	off   [2]float32
	adv   float32
}

// TextOverlay rasterizes ASCII glyphs into a single atlas at startup
// and afterwards only assembles screen-space quads per frame.
type TextOverlay struct {
	atlas  *image.Alpha
	glyphs map[rune]glyphInfo
	face   font.Face
}

const overlayAtlasSize = 512

func NewTextOverlay(fontPath string, fontSize float64) (*TextOverlay, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	atlas := image.NewAlpha(image.Rect(0, 0, overlayAtlasSize, overlayAtlasSize))
	glyphs := make(map[rune]glyphInfo)

	x, y := 2, 2
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= overlayAtlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= overlayAtlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = glyphInfo{
			uvMin: [2]float32{float32(x) / overlayAtlasSize, float32(y) / overlayAtlasSize},
			uvMax: [2]float32{float32(x+w) / overlayAtlasSize, float32(y+h) / overlayAtlasSize},
			size:  [2]float32{float32(w), float32(h)},
			off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			adv:   float32(adv) / 64.0, // fixed 26.6 to float
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &TextOverlay{
		atlas:  atlas,
		glyphs: glyphs,
		face:   face,
	}, nil
}

// AtlasRGBA expands the alpha atlas into white RGBA texels for the
// texture upload path, which only speaks RGBA8.
func (t *TextOverlay) AtlasRGBA() (texels []uint8, width, height uint32) {
	bounds := t.atlas.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	texels = make([]uint8, w*h*4)
	for i, a := range t.atlas.Pix {
		texels[i*4+0] = 255
		texels[i*4+1] = 255
		texels[i*4+2] = 255
		texels[i*4+3] = a
	}
	return texels, uint32(w), uint32(h)
}

// BuildVertices lays out a multi-line text block starting at pixel
// position (px, py), converted to clip space for the overlay shader.
func (t *TextOverlay) BuildVertices(text string, px, py float32, color [4]float32, screenW, screenH int) []OverlayVertex {
	vertices := make([]OverlayVertex, 0, len(text)*6)

	sw := float32(screenW)
	sh := float32(screenH)
	metrics := t.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	posX := px
	posY := py + ascent

	for _, r := range text {
		if r == '\n' {
			posX = px
			posY += lineHeight
			continue
		}

		g, ok := t.glyphs[r]
		if !ok {
			continue
		}

		x0 := (posX+g.off[0])/sw*2.0 - 1.0
		y0 := 1.0 - (posY+g.off[1])/sh*2.0
		x1 := (posX+g.off[0]+g.size[0])/sw*2.0 - 1.0
		y1 := 1.0 - (posY+g.off[1]+g.size[1])/sh*2.0

		vertices = append(vertices,
			OverlayVertex{Pos: [2]float32{x0, y0}, UV: [2]float32{g.uvMin[0], g.uvMin[1]}, Color: color},
			OverlayVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: color},
			OverlayVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: color},
			OverlayVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: color},
			OverlayVertex{Pos: [2]float32{x1, y1}, UV: [2]float32{g.uvMax[0], g.uvMax[1]}, Color: color},
			OverlayVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: color},
		)

		posX += g.adv
	}

	return vertices
}

const helpText = `Left mouse click and drag to track camera
Middle mouse click and drag to dolly camera
Right mouse click and drag to orbit camera
Mouse wheel to dolly camera

Press +/- to increase/decrease light radius
Press SPACE to start/stop light animation
Press L to enable/disable rendering of lights
Press M to enable/disable multi pass lighting [tier 1]
Press S to toggle between shading tiers
Press T to enable/disable textures
Press ALT + ENTER to toggle full screen
Press ESC to exit

Press H to hide help`

// BuildStatusText renders the HUD: the help page when requested,
// otherwise the live stats.
func BuildStatusText(settings *SceneSettings, selector *TechniqueSelector, fps int, lightRadius float32) string {
	if settings.ShowHelp {
		return helpText
	}

	text := fmt.Sprintf("FPS: %d\n", fps)
	text += fmt.Sprintf("%s\n", selector.Tier)
	text += fmt.Sprintf("Technique: %s\n", selector.Technique())
	text += fmt.Sprintf("Light radius: %g\n", lightRadius)
	text += "\nPress H to display help"
	return text
}
