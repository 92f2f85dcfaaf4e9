package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	landscape := CanvasFor(Landscape)

	assert.Equal(t, Point{X: 600, Y: 360}, Resolve(Position{X: 50, Y: 45}, landscape))
	assert.Equal(t, Point{X: 0, Y: 0}, Resolve(Position{X: 0, Y: 0}, landscape))
	assert.Equal(t, Point{X: 1200, Y: 800}, Resolve(Position{X: 100, Y: 100}, landscape))
}

func TestResolve_StaysInsideCanvas(t *testing.T) {
	for _, o := range []Orientation{Landscape, Portrait} {
		canvas := CanvasFor(o)
		for x := 0.0; x <= 100; x += 12.5 {
			for y := 0.0; y <= 100; y += 12.5 {
				p := Resolve(Position{X: x, Y: y}, canvas)
				assert.GreaterOrEqual(t, p.X, 0.0)
				assert.LessOrEqual(t, p.X, canvas.Width)
				assert.GreaterOrEqual(t, p.Y, 0.0)
				assert.LessOrEqual(t, p.Y, canvas.Height)
			}
		}
	}
}

func TestResolve_OrientationRoundTrip(t *testing.T) {
	pos := Position{X: 30, Y: 70}
	landscape := CanvasFor(Landscape)
	portrait := CanvasFor(Portrait)

	assert.Equal(t, Size{Width: portrait.Height, Height: portrait.Width}, landscape)

	p := Resolve(pos, portrait)
	back := Position{X: p.X / portrait.Width * 100, Y: p.Y / portrait.Height * 100}
	assert.InDelta(t, pos.X, back.X, 1e-9)
	assert.InDelta(t, pos.Y, back.Y, 1e-9)
}

func TestPageFrame(t *testing.T) {
	frame := PageFrameFor("A4", Landscape, 10)
	assert.Equal(t, Size{Width: 297, Height: 210}, frame.Page)
	assert.Equal(t, Size{Width: 277, Height: 190}, frame.Content())

	canvas := CanvasFor(Landscape)
	scale := frame.Scale(canvas)
	assert.InDelta(t, 277.0/1200, scale, 1e-9)

	center := frame.Resolve(Position{X: 50, Y: 50}, canvas)
	assert.InDelta(t, 148.5, center.X, 1e-9)
	assert.InDelta(t, 105, center.Y, 1e-9)

	corner := frame.Map(Point{}, canvas)
	assert.InDelta(t, 10, corner.X, 1e-9)
	assert.Greater(t, corner.Y, 10.0)
}

func TestPageFrameFor_Fallbacks(t *testing.T) {
	frame := PageFrameFor("Tabloid", Portrait, -5)
	assert.Equal(t, Size{Width: 210, Height: 297}, frame.Page)
	assert.Equal(t, 0.0, frame.Margin)

	frame = PageFrameFor("A5", Portrait, 500)
	assert.Less(t, frame.Margin, 148.0/2)
}
