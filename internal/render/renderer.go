// Package render projects the physics world onto a Braille canvas through a
// damped following camera. Rendering is best-effort: shapes it cannot
// interpret and cameras without a target degrade to no-ops, never errors.
package render

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// vertexed is the fallback surface for shape classes the renderer does not
// know by name: anything exposing a transformed vertex list draws as an open
// polyline.
type vertexed interface {
	Count() int
	TransformVert(i int) cp.Vector
}

type Renderer struct {
	cam    *Camera
	canvas *Canvas
	space  *cp.Space
}

// New builds a renderer over the given space. w and h are terminal cells.
func New(space *cp.Space, cam *Camera, w, h int) *Renderer {
	return &Renderer{
		cam:    cam,
		canvas: NewCanvas(w, h),
		space:  space,
	}
}

func (r *Renderer) Camera() *Camera { return r.cam }

// SetSpace re-points the renderer at a freshly built world.
func (r *Renderer) SetSpace(space *cp.Space) { r.space = space }

// Resize rebuilds the canvas so the backing resolution tracks the terminal.
func (r *Renderer) Resize(w, h int) {
	r.canvas = NewCanvas(w, h)
}

// Frame renders one frame: advance the camera, clear, grid, then every
// fixture of every body. All due physics steps must have run before this.
func (r *Renderer) Frame() {
	r.cam.Follow()
	r.canvas.Clear()
	r.drawGrid()

	if r.space == nil {
		return
	}
	r.space.StaticBody.EachShape(r.drawShape)
	r.space.EachBody(func(body *cp.Body) {
		body.EachShape(r.drawShape)
	})
}

// View returns the current canvas as terminal lines.
func (r *Renderer) View() string {
	return r.canvas.String()
}

// drawGrid strokes 1-world-unit grid lines across the visible world bounds,
// found by unprojecting the canvas corners.
func (r *Renderer) drawGrid() {
	pw, ph := r.canvas.PixelWidth(), r.canvas.PixelHeight()
	topLeft := r.cam.Unproject(cp.Vector{X: 0, Y: 0}, pw, ph)
	bottomRight := r.cam.Unproject(cp.Vector{X: float64(pw), Y: float64(ph)}, pw, ph)

	// Dotted so the grid reads as background next to solid shape strokes.
	const stride = 5
	for x := math.Floor(topLeft.X); x <= math.Ceil(bottomRight.X); x++ {
		a := r.cam.Project(cp.Vector{X: x, Y: topLeft.Y}, pw, ph)
		b := r.cam.Project(cp.Vector{X: x, Y: bottomRight.Y}, pw, ph)
		r.canvas.DottedLine(roundToInt(a.X), roundToInt(a.Y), roundToInt(b.X), roundToInt(b.Y), stride)
	}
	for y := math.Floor(bottomRight.Y); y <= math.Ceil(topLeft.Y); y++ {
		a := r.cam.Project(cp.Vector{X: topLeft.X, Y: y}, pw, ph)
		b := r.cam.Project(cp.Vector{X: bottomRight.X, Y: y}, pw, ph)
		r.canvas.DottedLine(roundToInt(a.X), roundToInt(a.Y), roundToInt(b.X), roundToInt(b.Y), stride)
	}
}

func (r *Renderer) drawShape(shape *cp.Shape) {
	switch class := shape.Class.(type) {
	case *cp.Circle:
		r.drawCircle(class, shape.Body())
	case *cp.Segment:
		pw, ph := r.canvas.PixelWidth(), r.canvas.PixelHeight()
		a := r.cam.Project(class.TransformA(), pw, ph)
		b := r.cam.Project(class.TransformB(), pw, ph)
		r.line(a, b)
	case *cp.PolyShape:
		r.drawPoly(class, true)
	default:
		if v, ok := shape.Class.(vertexed); ok {
			r.drawPoly(v, false)
		}
	}
}

// drawCircle strokes the outline plus a rotation spoke so rolling is visible.
func (r *Renderer) drawCircle(circle *cp.Circle, body *cp.Body) {
	pw, ph := r.canvas.PixelWidth(), r.canvas.PixelHeight()
	center := circle.TransformC()
	p := r.cam.Project(center, pw, ph)
	radius := circle.Radius() * r.cam.scale()
	r.canvas.Circle(roundToInt(p.X), roundToInt(p.Y), roundToInt(radius))

	angle := body.Angle()
	rim := center.Add(cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}.Mult(circle.Radius()))
	r.line(p, r.cam.Project(rim, pw, ph))
}

// drawPoly strokes the vertex list in order, closing the path for polygons
// and leaving it open for polyline fallbacks. Empty lists are a no-op.
func (r *Renderer) drawPoly(v vertexed, closed bool) {
	count := v.Count()
	if count == 0 {
		return
	}
	pw, ph := r.canvas.PixelWidth(), r.canvas.PixelHeight()
	prev := r.cam.Project(v.TransformVert(0), pw, ph)
	for i := 1; i < count; i++ {
		next := r.cam.Project(v.TransformVert(i), pw, ph)
		r.line(prev, next)
		prev = next
	}
	if closed && count > 2 {
		r.line(prev, r.cam.Project(v.TransformVert(0), pw, ph))
	}
}

func (r *Renderer) line(a, b cp.Vector) {
	r.canvas.Line(roundToInt(a.X), roundToInt(a.Y), roundToInt(b.X), roundToInt(b.Y))
}
