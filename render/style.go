package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidStyle is returned for unknown color names and unusable glyphs
var ErrInvalidStyle = errors.New("invalid display style")

// Style holds everything the presenter needs to know about appearance
type Style struct {
	Glyph      rune
	Dot        tcell.Color
	Fixation   tcell.Color
	Text       tcell.Color
	Background tcell.Color

	// CellAspect is terminal cell height over width
	CellAspect float64
}

// ParseColor accepts W3C color names, #rrggbb and "default"
func ParseColor(name string) (tcell.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" || name == "reset" {
		return tcell.ColorReset, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("%w: unknown color %q", ErrInvalidStyle, name)
	}
	return c, nil
}

// NewStyle resolves configured names into a Style
func NewStyle(glyph, dot, fixation, text, background string, aspect float64) (Style, error) {
	runes := []rune(glyph)
	if len(runes) != 1 {
		return Style{}, fmt.Errorf("%w: glyph must be one character, got %q", ErrInvalidStyle, glyph)
	}
	if !(aspect > 0) {
		return Style{}, fmt.Errorf("%w: cell aspect must be positive, got %v", ErrInvalidStyle, aspect)
	}

	s := Style{Glyph: runes[0], CellAspect: aspect}
	for _, c := range []struct {
		name string
		dst  *tcell.Color
	}{
		{dot, &s.Dot},
		{fixation, &s.Fixation},
		{text, &s.Text},
		{background, &s.Background},
	} {
		v, err := ParseColor(c.name)
		if err != nil {
			return Style{}, err
		}
		*c.dst = v
	}
	return s, nil
}

func (s Style) base() tcell.Style {
	return tcell.StyleDefault.Background(s.Background)
}
