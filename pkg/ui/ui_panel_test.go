package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider_handleCursor(t *testing.T) {
	s := NewSlider(10, 100, 200, "Max Speed", "maxSpeed", 0, 4, 1)

	s.handleCursor(110, 105, false)
	_, changed := s.TakeChange()
	assert.False(t, changed, "hovering without a click changes nothing")

	s.handleCursor(110, 105, true)
	assert.InDelta(t, 2.0, s.Value, 1e-9)
	v, changed := s.TakeChange()
	require.True(t, changed)
	assert.InDelta(t, 2.0, v, 1e-9)

	_, changed = s.TakeChange()
	assert.False(t, changed, "a change is reported once")

	s.handleCursor(400, 105, true)
	assert.InDelta(t, 2.0, s.Value, 1e-9, "clicks outside the bar are ignored")

	s.handleCursor(210, 110, true)
	assert.Equal(t, 4.0, s.Value)
}

func TestSlider_Integer(t *testing.T) {
	p := NewUIPanel(0, 0, 220, 600, "test")
	s := p.AddIntSlider("Boids", "numBoids", 1, 101, 25)
	require.True(t, s.Integer)

	s.handleCursor(s.X+s.W*0.333, s.Y+1, true)
	assert.Equal(t, 34.0, s.Value)
	v, ok := s.TakeChange()
	require.True(t, ok)
	assert.Equal(t, 34, v)
}

func TestNewSlider_ClampsInitialValue(t *testing.T) {
	s := NewSlider(0, 0, 100, "w", "w", 0, 1, 5)
	assert.Equal(t, 1.0, s.Value)
}

func TestCheckbox_handleCursor(t *testing.T) {
	c := NewCheckbox(10, 10, "Show Leader", false)

	c.handleCursor(15, 15, true)
	assert.True(t, c.Value)
	c.handleCursor(15, 15, true)
	assert.True(t, c.Value, "holding the button does not toggle again")
	c.handleCursor(15, 15, false)
	c.handleCursor(15, 15, true)
	assert.False(t, c.Value)

	c.handleCursor(100, 100, true)
	assert.False(t, c.Value)
}

func TestCheckbox_LabelIsClickable(t *testing.T) {
	c := NewCheckbox(10, 10, "Show Leader", false)
	labelEnd := c.X + c.Size + 8 + glyphWidth*float64(len("Show Leader"))

	c.handleCursor(labelEnd-1, 15, true)
	assert.True(t, c.Value)
	c.handleCursor(labelEnd+1, 15, false)
	c.handleCursor(labelEnd+1, 15, true)
	assert.True(t, c.Value, "past the label nothing toggles")
}

func TestButton_handleCursor(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 100, 24, "Reset", func() { clicks++ })

	b.handleCursor(50, 12, true)
	b.handleCursor(50, 12, true)
	assert.Equal(t, 1, clicks)

	b.handleCursor(50, 12, false)
	b.handleCursor(50, 12, true)
	assert.Equal(t, 2, clicks)

	b.handleCursor(150, 12, true)
	assert.Equal(t, 2, clicks)
}

func TestToggleButton(t *testing.T) {
	var seen []bool
	var b *Button
	b = NewToggleButton(0, 0, 100, 24, "Pause", "Resume", func() { seen = append(seen, b.Active) })
	assert.Equal(t, "Pause", b.Text())

	b.handleCursor(50, 12, true)
	assert.True(t, b.Active)
	assert.Equal(t, "Resume", b.Text())

	b.handleCursor(50, 12, false)
	b.handleCursor(50, 12, true)
	assert.False(t, b.Active)
	assert.Equal(t, "Pause", b.Text())
	assert.Equal(t, []bool{true, false}, seen, "OnClick sees the new state")

	plain := NewButton(0, 0, 100, 24, "Reset", nil)
	plain.handleCursor(50, 12, true)
	assert.False(t, plain.Active)
	assert.Equal(t, "Reset", plain.Text())
}

func TestUIPanel_Changes(t *testing.T) {
	p := NewUIPanel(0, 0, 220, 600, "Flock")
	p.AddSection("Weights")
	sep := p.AddSlider("Separation", "separationWeight", 0, 5, 2)
	coh := p.AddSlider("Cohesion", "cohesionWeight", 0, 5, 1)
	p.EndSection()
	p.AddSection("View")
	p.AddCheckbox("Show Leader", true)
	p.AddToggleButton("Pause", "Resume", nil)
	p.AddButton("Reset", nil)
	p.EndSection()

	assert.Nil(t, p.Changes())

	sep.handleCursor(sep.X, sep.Y+1, true)
	coh.handleCursor(coh.X+coh.W, coh.Y+1, true)

	changes := p.Changes()
	assert.Equal(t, map[string]interface{}{"separationWeight": 0.0, "cohesionWeight": 5.0}, changes)
	assert.Nil(t, p.Changes(), "changes are drained")
}

func TestUIPanel_LayoutMatchesAddPositions(t *testing.T) {
	p := NewUIPanel(10, 10, 220, 600, "Flock")
	p.AddSection("A")
	s1 := p.AddSlider("one", "one", 0, 1, 0)
	c1 := p.AddCheckbox("two", false)
	p.EndSection()
	p.AddSection("B")
	s2 := p.AddSlider("three", "three", 0, 1, 0)
	b1 := p.AddButton("four", nil)
	p.EndSection()

	want := []float64{s1.Y, c1.Y, s2.Y, b1.Y}
	p.layout(func(int, float64) {}, func(PanelSection, float64) {})
	assert.Equal(t, want, []float64{s1.Y, c1.Y, s2.Y, b1.Y})
	assert.Less(t, s1.Y, c1.Y)
	assert.Less(t, c1.Y, s2.Y)
	assert.Less(t, s2.Y, b1.Y)
}

func TestUIPanel_scroll(t *testing.T) {
	p := NewUIPanel(0, 0, 220, 100, "Flock")
	for i := 0; i < 10; i++ {
		p.AddSlider("s", "", 0, 1, 0)
	}

	p.scroll(1)
	assert.Equal(t, 0.0, p.ScrollOffset, "cannot scroll above the top")

	p.scroll(-1000)
	maxScroll := p.contentHeight() - p.Height + 40
	assert.Equal(t, maxScroll, p.ScrollOffset)
}
