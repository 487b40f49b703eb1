package fillrule

import "github.com/gogpu/quartz/internal/path"

// Winding returns the winding number of polys around p: the signed number
// of boundary crossings of a ray from p towards +x. Edges pointing down
// (increasing y) count +1.
func Winding(polys []path.Polygon, p path.Point) int {
	w := 0
	for _, poly := range polys {
		n := len(poly)
		for i := range poly {
			a, b := poly[i], poly[(i+1)%n]
			switch {
			case a.Y <= p.Y && b.Y > p.Y:
				if side(a, b, p) > 0 {
					w++
				}
			case a.Y > p.Y && b.Y <= p.Y:
				if side(a, b, p) < 0 {
					w--
				}
			}
		}
	}
	return w
}

// Contains reports whether p is inside polys under rule.
func Contains(polys []path.Polygon, p path.Point, rule Rule) bool {
	return rule.Inside(Winding(polys, p))
}

// side is positive when p lies to the right of a->b in a y-down frame.
func side(a, b, p path.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}
