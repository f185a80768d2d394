package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/rdk/constant"
	"github.com/lixenwraith/rdk/vmath"
)

// Presenter draws stimulus frames and text screens on a tcell screen
type Presenter struct {
	screen tcell.Screen
	style  Style
	extent float64
}

// NewPresenter draws a field of the given extent (half-width or radius) centred on screen
func NewPresenter(screen tcell.Screen, extent float64, style Style) *Presenter {
	return &Presenter{screen: screen, style: style, extent: extent}
}

// Viewport fits the field to the current screen size
func (p *Presenter) Viewport() Viewport {
	w, h := p.screen.Size()
	return NewViewport(w, h, p.extent, p.style.CellAspect)
}

// Frame draws one stimulus frame: every dot, then the fixation mark on top
func (p *Presenter) Frame(dots []vmath.Vec2F) {
	base := p.style.base()
	p.screen.Fill(' ', base)

	vp := p.Viewport()
	dotStyle := base.Foreground(p.style.Dot)
	for _, d := range dots {
		if x, y, ok := vp.Cell(d); ok {
			p.screen.SetContent(x, y, p.style.Glyph, nil, dotStyle)
		}
	}

	if vp.Cols > 0 && vp.Rows > 0 {
		x, y := vp.Centre()
		p.screen.SetContent(x, y, constant.FixationGlyph, nil, base.Foreground(p.style.Fixation))
	}
	p.screen.Show()
}

// Message clears the screen and centres lines on it; lines wider than the screen are truncated
func (p *Presenter) Message(lines ...string) {
	base := p.style.base()
	p.screen.Fill(' ', base)

	w, h := p.screen.Size()
	text := base.Foreground(p.style.Text)
	top := (h - len(lines)) / 2
	for i, line := range lines {
		y := top + i
		if y < 0 || y >= h {
			continue
		}
		if runewidth.StringWidth(line) > w {
			line = runewidth.Truncate(line, w, "")
		}
		x := (w - runewidth.StringWidth(line)) / 2
		for _, r := range line {
			p.screen.SetContent(x, y, r, nil, text)
			x += runewidth.RuneWidth(r)
		}
	}
	p.screen.Show()
}

// Clear blanks the screen to the background color
func (p *Presenter) Clear() {
	p.screen.Fill(' ', p.style.base())
	p.screen.Show()
}

// Resize resynchronizes the terminal after a size change; the next frame refits the field
func (p *Presenter) Resize() {
	p.screen.Sync()
}
