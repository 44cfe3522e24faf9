// pkg/physics/geometry.go
package physics

// Line is a directed line held as a unit normal and the signed distance of
// the line from the origin along that normal. Travelling along the line the
// normal points to the right.
type Line struct {
	Direction Vector2D
	Along     Vector2D
	Distance  float64
}

// NewLine creates a line from a non-zero normal and a distance from the origin
func NewLine(direction Vector2D, distance float64) Line {
	n := direction.Normalized()
	return Line{
		Direction: n,
		Along:     n.Perpendicular(),
		Distance:  distance,
	}
}

// LineThrough creates the line running from first to second.
// The points must be distinct.
func LineThrough(first, second Vector2D) Line {
	along := second.Sub(first).Normalized()
	direction := along.Perpendicular().Neg()
	return NewLine(direction, first.Dot(direction))
}

// Offset is the projection of the origin onto the line
func (l Line) Offset() Vector2D {
	return l.Direction.Scale(l.Distance)
}

// Project returns the closest point on the line to point
func (l Line) Project(point Vector2D) Vector2D {
	return point.Project(l.Along).Add(l.Offset())
}

// Reflect mirrors point across the line
func (l Line) Reflect(point Vector2D) Vector2D {
	return point.Sub(l.Direction.Scale(2 * l.DistanceTo(point)))
}

// DistanceTo returns the signed distance from the line to point.
// Negative values are on the left of the line.
func (l Line) DistanceTo(point Vector2D) float64 {
	return point.Dot(l.Direction) - l.Distance
}

// IsOnLeft reports whether point lies strictly left of the line
func (l Line) IsOnLeft(point Vector2D) bool {
	return l.DistanceTo(point) < 0
}

// IsOnRight reports whether point lies strictly right of the line
func (l Line) IsOnRight(point Vector2D) bool {
	return l.DistanceTo(point) > 0
}

// Parallel returns the line with the same direction passing through point
func (l Line) Parallel(point Vector2D) Line {
	return NewLine(l.Direction, point.Dot(l.Direction))
}

// Perpendicular returns the line at a right angle to l passing through point.
// Its normal is l's normal turned by Vector2D.Perpendicular.
func (l Line) Perpendicular(point Vector2D) Line {
	direction := l.Direction.Perpendicular()
	return NewLine(direction, point.Dot(direction))
}

// LineSegment is the part of a line between two signed distances measured
// along Line.Along from the line's offset point.
type LineSegment struct {
	Line    Line
	MinDist float64
	MaxDist float64
}

// SegmentBetween creates the segment joining two distinct points
func SegmentBetween(first, second Vector2D) LineSegment {
	line := LineThrough(first, second)
	d1, d2 := first.Dot(line.Along), second.Dot(line.Along)
	if d1 > d2 {
		d1, d2 = d2, d1
	}
	return LineSegment{Line: line, MinDist: d1, MaxDist: d2}
}

// Length returns the length of the segment
func (s LineSegment) Length() float64 {
	d := s.MaxDist - s.MinDist
	if d < 0 {
		return -d
	}
	return d
}

func (s LineSegment) at(dist float64) Vector2D {
	return s.Line.Along.Scale(dist).Add(s.Line.Offset())
}

// Start is the endpoint at MinDist
func (s LineSegment) Start() Vector2D { return s.at(s.MinDist) }

// End is the endpoint at MaxDist
func (s LineSegment) End() Vector2D { return s.at(s.MaxDist) }

// Mid is the midpoint of the segment
func (s LineSegment) Mid() Vector2D {
	return s.Start().Add(s.End()).Div(2)
}

// Project returns the point of the segment closest to point
func (s LineSegment) Project(point Vector2D) Vector2D {
	d := point.Dot(s.Line.Along)
	switch {
	case d >= s.MaxDist:
		return s.End()
	case d <= s.MinDist:
		return s.Start()
	}
	return s.at(d)
}

// DistanceTo returns the shortest distance from the segment to point
func (s LineSegment) DistanceTo(point Vector2D) float64 {
	d := point.Dot(s.Line.Along)
	switch {
	case d >= s.MaxDist:
		return s.End().Distance(point)
	case d <= s.MinDist:
		return s.Start().Distance(point)
	}
	dist := s.Line.DistanceTo(point)
	if dist < 0 {
		return -dist
	}
	return dist
}

// Triangle is an oriented triangle given by a base point and the two edge
// vectors leaving it.
type Triangle struct {
	Base      Vector2D
	Primary   Vector2D
	Secondary Vector2D
}

// TriangleFrom creates a triangle from its three corners
func TriangleFrom(base, first, second Vector2D) Triangle {
	return Triangle{
		Base:      base,
		Primary:   first.Sub(base),
		Secondary: second.Sub(base),
	}
}

func (t Triangle) signedArea() float64 {
	return t.Primary.Cross(t.Secondary) / 2
}

// Area returns the unsigned area of the triangle
func (t Triangle) Area() float64 {
	a := t.signedArea()
	if a < 0 {
		return -a
	}
	return a
}

// IsClockwise reports whether Primary turns clockwise onto Secondary
func (t Triangle) IsClockwise() bool {
	return t.signedArea() < 0
}

// First is the corner at the end of Primary
func (t Triangle) First() Vector2D { return t.Base.Add(t.Primary) }

// Second is the corner at the end of Secondary
func (t Triangle) Second() Vector2D { return t.Base.Add(t.Secondary) }
