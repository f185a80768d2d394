package render

import (
	"math"

	"github.com/lixenwraith/rdk/vmath"
)

// Viewport maps field coordinates (origin at centre, y up) onto terminal cells (origin top-left, y down).
// The field is scaled uniformly to the largest size that fits, stretched vertically by the cell aspect
// so a square field looks square.
type Viewport struct {
	Cols, Rows int

	cx, cy float64
	extent float64
	scale  float64 // field units per column
	aspect float64
}

// NewViewport fits a field of the given extent into cols × rows cells
func NewViewport(cols, rows int, extent, aspect float64) Viewport {
	v := Viewport{Cols: cols, Rows: rows, extent: extent, aspect: aspect}
	if cols <= 0 || rows <= 0 || !(extent > 0) || !(aspect > 0) {
		return v
	}
	v.cx = float64(cols) / 2
	v.cy = float64(rows) / 2
	v.scale = math.Max(2*extent/float64(cols), 2*extent/(float64(rows)*aspect))
	return v
}

// Cell returns the cell for p; ok is false when the screen has no room.
// Points on or past the field edge are drawn on the outermost cell of the field.
func (v Viewport) Cell(p vmath.Vec2F) (x, y int, ok bool) {
	if v.scale == 0 {
		return 0, 0, false
	}
	px := math.Min(math.Max(p.X, -v.extent), v.extent)
	py := math.Min(math.Max(p.Y, -v.extent), v.extent)

	halfW := v.extent / v.scale
	halfH := v.extent / (v.scale * v.aspect)
	x = min(int(math.Floor(v.cx+px/v.scale)), int(math.Ceil(v.cx+halfW))-1, v.Cols-1)
	y = min(int(math.Floor(v.cy-py/(v.scale*v.aspect))), int(math.Ceil(v.cy+halfH))-1, v.Rows-1)
	if x < 0 || y < 0 || x >= v.Cols || y >= v.Rows {
		return 0, 0, false
	}
	return x, y, true
}

// Centre is the cell holding the field origin
func (v Viewport) Centre() (x, y int) {
	return v.Cols / 2, v.Rows / 2
}
