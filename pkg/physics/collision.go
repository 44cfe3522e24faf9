// pkg/physics/collision.go
package physics

import "math"

// Rect represents an axis-aligned rectangular area in screen coordinates
// (Y grows downwards, so Top is the smaller Y).
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// RectFromCorner builds a rect from its top-left corner and size
func RectFromCorner(x, y, w, h float64) Rect {
	return Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
}

// BoundingRect returns the smallest rect containing every point
func BoundingRect(points ...Vector2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return Rect{
		Center: lo.Add(hi).Scale(0.5),
		Width:  hi.X - lo.X,
		Height: hi.Y - lo.Y,
	}
}

func (r Rect) Left() float64   { return r.Center.X - r.Width/2 }
func (r Rect) Right() float64  { return r.Center.X + r.Width/2 }
func (r Rect) Top() float64    { return r.Center.Y - r.Height/2 }
func (r Rect) Bottom() float64 { return r.Center.Y + r.Height/2 }

// Min is the top-left corner
func (r Rect) Min() Vector2D { return Vector2D{X: r.Left(), Y: r.Top()} }

// Max is the bottom-right corner
func (r Rect) Max() Vector2D { return Vector2D{X: r.Right(), Y: r.Bottom()} }

// Corners returns the four corners clockwise from the top-left
func (r Rect) Corners() [4]Vector2D {
	return [4]Vector2D{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
}

// Contains reports whether point lies inside the rect (half-open on the
// right and bottom edges).
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Left() &&
		point.X < r.Right() &&
		point.Y >= r.Top() &&
		point.Y < r.Bottom()
}

// Overlaps reports whether the two rects share interior area.
// Rects that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.Left() < other.Right() &&
		other.Left() < r.Right() &&
		r.Top() < other.Bottom() &&
		other.Top() < r.Bottom()
}

// Expand grows the rect by dx on the left and right and dy on the top and bottom
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{Center: r.Center, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Rotated returns the bounding rect of r rotated by angle degrees about its center
func (r Rect) Rotated(angle float64) Rect {
	corners := r.Corners()
	pts := make([]Vector2D, len(corners))
	for i, c := range corners {
		pts[i] = c.Sub(r.Center).Rotated(angle).Add(r.Center)
	}
	out := BoundingRect(pts...)
	out.Center = r.Center
	return out
}

// ClampInside moves r the least distance needed to lie inside bounds.
// A rect larger than bounds along an axis is centered on that axis.
func (r Rect) ClampInside(bounds Rect) Rect {
	r.Center.X = clampAxis(r.Center.X, r.Width, bounds.Left(), bounds.Right())
	r.Center.Y = clampAxis(r.Center.Y, r.Height, bounds.Top(), bounds.Bottom())
	return r
}

func clampAxis(center, size, lo, hi float64) float64 {
	if size >= hi-lo {
		return (lo + hi) / 2
	}
	if center-size/2 < lo {
		return lo + size/2
	}
	if center+size/2 > hi {
		return hi - size/2
	}
	return center
}

// Outside reports whether r lies entirely beyond one of the edges of bounds
func (r Rect) Outside(bounds Rect) bool {
	return r.Bottom() < bounds.Top() ||
		r.Right() < bounds.Left() ||
		r.Left() > bounds.Right() ||
		r.Top() > bounds.Bottom()
}

// QuadTree for spatial partitioning.
// Objects are filed by the center of their bounds; queries match against the
// full bounds.
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Bounds    []Rect
	Objects   []interface{}
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree

	// largest half extents inserted anywhere below this node
	reachX, reachY float64
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Bounds:   make([]Rect, 0, capacity),
		Objects:  make([]interface{}, 0, capacity),
	}
}

// Insert files object under bounds. It returns false when the center of
// bounds is outside the tree's boundary.
func (qt *QuadTree) Insert(bounds Rect, object interface{}) bool {
	if !qt.Boundary.Contains(bounds.Center) {
		return false
	}
	qt.reachX = math.Max(qt.reachX, bounds.Width/2)
	qt.reachY = math.Max(qt.reachY, bounds.Height/2)

	if len(qt.Bounds) < qt.Capacity && !qt.Divided {
		qt.Bounds = append(qt.Bounds, bounds)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(bounds, object) ||
		qt.NorthEast.Insert(bounds, object) ||
		qt.SouthWest.Insert(bounds, object) ||
		qt.SouthEast.Insert(bounds, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree(nw, qt.Capacity)
	qt.NorthEast = NewQuadTree(ne, qt.Capacity)
	qt.SouthWest = NewQuadTree(sw, qt.Capacity)
	qt.SouthEast = NewQuadTree(se, qt.Capacity)
	qt.Divided = true
}

// Query returns all objects whose bounds overlap area
func (qt *QuadTree) Query(area Rect) []interface{} {
	found := make([]interface{}, 0)
	return qt.query(area, found)
}

func (qt *QuadTree) query(area Rect, found []interface{}) []interface{} {
	// Objects are filed by center, so widen the search by how far their
	// bounds can reach past the node.
	if !qt.intersects(area.Expand(qt.reachX, qt.reachY)) {
		return found
	}

	for i, b := range qt.Bounds {
		if area.Overlaps(b) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	found = qt.SouthEast.query(area, found)
	return found
}

// Clear empties the tree so it can be refilled for the next step
func (qt *QuadTree) Clear() {
	qt.Bounds = qt.Bounds[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast = nil, nil, nil, nil
	qt.reachX, qt.reachY = 0, 0
}

func (qt *QuadTree) intersects(area Rect) bool {
	return !(area.Left() > qt.Boundary.Right() ||
		area.Right() < qt.Boundary.Left() ||
		area.Top() > qt.Boundary.Bottom() ||
		area.Bottom() < qt.Boundary.Top())
}
