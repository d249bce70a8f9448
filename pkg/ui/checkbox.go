package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glyphWidth is the advance of the ebitenutil debug font.
const glyphWidth = 6.0

// Checkbox toggles a display option. The label is drawn to the right of the
// box and clicking it toggles too.
type Checkbox struct {
	Label   string
	Value   bool
	X, Y    float64
	Size    float64
	pressed bool // mouse still held since the last toggle
	hover   bool
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// Update polls the mouse.
func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.handleCursor(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// hitWidth spans the box, a gap and the label text.
func (c *Checkbox) hitWidth() float64 {
	if c.Label == "" {
		return c.Size
	}
	return c.Size + 8 + glyphWidth*float64(len([]rune(c.Label)))
}

// handleCursor toggles once per press over the box or its label.
func (c *Checkbox) handleCursor(mx, my float64, down bool) {
	c.hover = mx >= c.X && mx <= c.X+c.hitWidth() && my >= c.Y && my <= c.Y+c.Size
	if !c.hover || !down {
		c.pressed = false
		return
	}
	// Toggle on click (with debouncing)
	if !c.pressed {
		c.Value = !c.Value
		c.pressed = true
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if c.hover {
		border = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2, border, true)

	// Fill if checked
	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}

	if c.Label != "" {
		ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+8), int(c.Y))
	}
}
