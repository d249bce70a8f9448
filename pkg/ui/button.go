package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable panel button. A button with an ActiveLabel is a
// toggle: each click flips Active and the label follows it.
type Button struct {
	Label       string
	ActiveLabel string
	Active      bool
	X, Y        float64
	Width       float64
	Height      float64
	OnClick     func()
	pressed     bool // mouse still held since the last click

	// Styling
	BGColor     color.RGBA
	HoverColor  color.RGBA
	ActiveColor color.RGBA
}

// NewButton creates a push button.
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:       label,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		OnClick:     onClick,
		BGColor:     color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor:  color.RGBA{R: 100, G: 150, B: 220, A: 255},
		ActiveColor: color.RGBA{R: 180, G: 110, B: 60, A: 255},
	}
}

// NewToggleButton creates a button showing label while inactive and activeLabel while active.
func NewToggleButton(x, y, width, height float64, label, activeLabel string, onClick func()) *Button {
	b := NewButton(x, y, width, height, label, onClick)
	b.ActiveLabel = activeLabel
	return b
}

// Text is the label currently shown.
func (b *Button) Text() string {
	if b.Active && b.ActiveLabel != "" {
		return b.ActiveLabel
	}
	return b.Label
}

// Update polls the mouse.
func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.handleCursor(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// handleCursor fires once per press; holding the mouse down does not repeat.
func (b *Button) handleCursor(mx, my float64, down bool) {
	if !b.contains(mx, my) || !down {
		b.pressed = false
		return
	}
	if b.pressed {
		return
	}
	b.pressed = true
	if b.ActiveLabel != "" {
		b.Active = !b.Active
	}
	if b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) contains(mx, my float64) bool {
	return mx >= b.X && mx <= b.X+b.Width && my >= b.Y && my <= b.Y+b.Height
}

func (b *Button) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()

	// an active toggle keeps its color, others light up under the cursor
	bg := b.BGColor
	switch {
	case b.Active:
		bg = b.ActiveColor
	case b.contains(float64(mx), float64(my)):
		bg = b.HoverColor
	}
	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bg, true)

	// Draw border
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, b.Text(), int(b.X+8), int(b.Y+b.Height/2-8))
}
