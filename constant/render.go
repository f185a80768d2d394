package constant

// Glyphs
const (
	DotGlyph      = '•'
	FixationGlyph = '+'
)

// Colors, as tcell color names or #rrggbb
const (
	DotColor        = "white"
	FixationColor   = "white"
	TextColor       = "white"
	BackgroundColor = "black"
)

// CellAspect is terminal cell height over width; dots are placed so the field keeps its shape
const CellAspect = 2.0
