package renderer

import "math"

// Reference frame every percentage position is resolved against (landscape).
const (
	ReferenceWidth  = 1200
	ReferenceHeight = 800
)

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasFor returns the reference canvas, swapped for portrait.
func CanvasFor(o Orientation) Size {
	if o == Portrait {
		return Size{Width: ReferenceHeight, Height: ReferenceWidth}
	}
	return Size{Width: ReferenceWidth, Height: ReferenceHeight}
}

// Resolve maps a percentage position onto absolute canvas units. The result is
// the element's center anchor.
func Resolve(pos Position, canvas Size) Point {
	return Point{
		X: pos.X * canvas.Width / 100,
		Y: pos.Y * canvas.Height / 100,
	}
}

// Page sizes in millimetres, portrait.
var pageSizes = map[string]Size{
	"A4":     {Width: 210, Height: 297},
	"A5":     {Width: 148, Height: 210},
	"Letter": {Width: 215.9, Height: 279.4},
	"Legal":  {Width: 215.9, Height: 355.6},
}

const (
	DefaultPageSize   = "A4"
	DefaultPageMargin = 10.0
)

// PageFrame is the print model used by the paginated backend: a page in
// millimetres with a uniform margin. Canvas coordinates are scaled uniformly
// into the printable area and centered there.
type PageFrame struct {
	Page   Size
	Margin float64
}

// PageFrameFor builds the frame for a named page size and orientation. Unknown
// sizes fall back to A4.
func PageFrameFor(name string, o Orientation, margin float64) PageFrame {
	page, ok := pageSizes[name]
	if !ok {
		page = pageSizes[DefaultPageSize]
	}
	if o != Portrait {
		page = Size{Width: page.Height, Height: page.Width}
	}
	if margin < 0 {
		margin = 0
	}
	limit := math.Min(page.Width, page.Height) / 2
	if margin >= limit {
		margin = limit - 1
	}
	return PageFrame{Page: page, Margin: margin}
}

// Content is the printable area inside the margins.
func (f PageFrame) Content() Size {
	return Size{
		Width:  f.Page.Width - 2*f.Margin,
		Height: f.Page.Height - 2*f.Margin,
	}
}

// Scale is the number of millimetres per canvas unit.
func (f PageFrame) Scale(canvas Size) float64 {
	content := f.Content()
	return math.Min(content.Width/canvas.Width, content.Height/canvas.Height)
}

// Map converts a canvas point into page coordinates.
func (f PageFrame) Map(p Point, canvas Size) Point {
	scale := f.Scale(canvas)
	content := f.Content()
	offsetX := f.Margin + (content.Width-canvas.Width*scale)/2
	offsetY := f.Margin + (content.Height-canvas.Height*scale)/2
	return Point{
		X: offsetX + p.X*scale,
		Y: offsetY + p.Y*scale,
	}
}

// Resolve maps a percentage position straight onto the page.
func (f PageFrame) Resolve(pos Position, canvas Size) Point {
	return f.Map(Resolve(pos, canvas), canvas)
}
