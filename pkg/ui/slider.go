package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits one numeric configuration value.
type Slider struct {
	Label    string
	Key      string // config key the value is sent under
	Value    float64
	Min, Max float64
	Integer  bool // round the value, e.g. for a population
	X, Y     float64
	W, H     float64

	changed bool
}

// NewSlider creates a slider of height 10 at x, y.
func NewSlider(x, y, w float64, label, key string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Key:   key,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     10,
	}
	s.Value = s.clamp(value)
	return s
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	s.handleCursor(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (s *Slider) handleCursor(mx, my float64, pressed bool) {
	if !pressed || !s.contains(mx, my) {
		return
	}
	// Calculate value based on horizontal position
	p := (mx - s.X) / s.W
	v := s.clamp(s.Min + p*(s.Max-s.Min))
	if v != s.Value {
		s.Value = v
		s.changed = true
	}
}

func (s *Slider) contains(mx, my float64) bool {
	return mx >= s.X && mx <= s.X+s.W && my >= s.Y && my <= s.Y+s.H
}

func (s *Slider) clamp(v float64) float64 {
	v = math.Max(s.Min, math.Min(v, s.Max))
	if s.Integer {
		v = math.Round(v)
	}
	return v
}

// TakeChange returns the value once after the user moved the slider.
func (s *Slider) TakeChange() (interface{}, bool) {
	if !s.changed {
		return nil, false
	}
	s.changed = false
	if s.Integer {
		return int(s.Value), true
	}
	return s.Value, true
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, s.format(), int(s.X+s.W-60), int(s.Y-15))
}

func (s *Slider) format() string {
	if s.Integer {
		return fmt.Sprintf("%6d", int(s.Value))
	}
	return fmt.Sprintf("%6.3f", s.Value)
}
