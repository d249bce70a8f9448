package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	setY(y float64)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 { return s.H + 25 }
func (s *SliderWrapper) setY(y float64)     { s.Y = y }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 { return c.Size + 10 }
func (c *CheckboxWrapper) setY(y float64)     { c.Y = y }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 { return b.Height + 10 }
func (b *ButtonWrapper) setY(y float64)     { b.Y = y }

// PanelSection groups the widgets in [StartIndex, EndIndex) under a title.
type PanelSection struct {
	Title      string
	StartIndex int
	EndIndex   int
}

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Widgets       []UIWidget
	Labels        []string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
	sliders  []*Slider
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider for the config value named key.
func (p *UIPanel) AddSlider(label, key string, min, max, value float64) *Slider {
	y := p.Y + p.contentHeight() + labelHeight
	slider := NewSlider(p.X+10, y, p.Width-20, label, key, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	p.sliders = append(p.sliders, slider)
	return slider
}

// AddIntSlider is AddSlider for whole numbers.
func (p *UIPanel) AddIntSlider(label, key string, min, max, value int) *Slider {
	s := p.AddSlider(label, key, float64(min), float64(max), float64(value))
	s.Integer = true
	s.Value = s.clamp(s.Value)
	return s
}

// AddCheckbox adds a checkbox; it draws its own label beside the box.
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	y := p.Y + p.contentHeight()
	checkbox := NewCheckbox(p.X+10, y, label, value)
	p.add(&CheckboxWrapper{checkbox}, "")
	return checkbox
}

// AddButton adds a full width button.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	return p.addButton(NewButton(p.X+10, p.Y+p.contentHeight(), p.Width-20, 24, label, onClick))
}

// AddToggleButton adds a full width two-state button.
func (p *UIPanel) AddToggleButton(label, activeLabel string, onClick func()) *Button {
	return p.addButton(NewToggleButton(p.X+10, p.Y+p.contentHeight(), p.Width-20, 24, label, activeLabel, onClick))
}

func (p *UIPanel) addButton(b *Button) *Button {
	p.add(&ButtonWrapper{b}, "")
	return b
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
}

// contentHeight is the height of the title, the section headers and the widgets added so far.
func (p *UIPanel) contentHeight() float64 {
	height := titleHeight + float64(len(p.sections))*sectionHeight
	for _, widget := range p.Widgets {
		height += widget.GetHeight()
	}
	return height
}

// Changes drains the slider edits since the last call, keyed by config key.
func (p *UIPanel) Changes() map[string]interface{} {
	var changes map[string]interface{}
	for _, s := range p.sliders {
		v, ok := s.TakeChange()
		if !ok || s.Key == "" {
			continue
		}
		if changes == nil {
			changes = make(map[string]interface{})
		}
		changes[s.Key] = v
	}
	return changes
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	_, dy := ebiten.Wheel()
	p.scroll(dy)

	for _, widget := range p.Widgets {
		widget.Update()
	}
}

func (p *UIPanel) scroll(dy float64) {
	if dy == 0 {
		return
	}
	p.ScrollOffset -= dy * 20

	maxScroll := p.contentHeight() - p.Height + 40
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.ScrollOffset < 0 {
		p.ScrollOffset = 0
	}
	if p.ScrollOffset > maxScroll {
		p.ScrollOffset = maxScroll
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	p.layout(func(idx int, y float64) {
		if !p.visible(y) {
			return
		}
		if p.Labels[idx] != "" {
			ebitenutil.DebugPrintAt(screen, p.Labels[idx], int(p.X+10), int(y))
		}
		p.Widgets[idx].Draw(screen)
	}, func(section PanelSection, y float64) {
		if !p.visible(y) {
			return
		}
		vector.FillRect(screen,
			float32(p.X+5), float32(y),
			float32(p.Width-10), 20,
			color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(y+5))
	})
}

// layout walks sections and widgets top to bottom, moving every widget to its
// scrolled position before calling onWidget.
func (p *UIPanel) layout(onWidget func(idx int, y float64), onSection func(s PanelSection, y float64)) {
	y := p.Y + titleHeight - p.ScrollOffset
	idx := 0
	place := func(end int) {
		for ; idx < end && idx < len(p.Widgets); idx++ {
			w := p.Widgets[idx]
			if p.Labels[idx] != "" {
				w.setY(y + labelHeight)
			} else {
				w.setY(y)
			}
			onWidget(idx, y)
			y += w.GetHeight()
		}
	}

	for _, section := range p.sections {
		place(section.StartIndex)
		onSection(section, y)
		y += sectionHeight
		place(section.EndIndex)
	}
	place(len(p.Widgets))
}

func (p *UIPanel) visible(y float64) bool {
	return y >= p.Y && y <= p.Y+p.Height-20
}
