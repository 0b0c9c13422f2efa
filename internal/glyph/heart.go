package glyph

// heartCurves traces the "loves" glyph from the root: the left lobe up to the
// notch at (0,-29), then the right lobe back down to the root.
var heartCurves = []Cubic{
	{C1: Point{-7, -7}, C2: Point{-18, -14}, To: Point{-18, -24}},
	{C1: Point{-18, -31}, C2: Point{-13, -36}, To: Point{-7, -36}},
	{C1: Point{-3, -36}, C2: Point{0, -34}, To: Point{0, -29}},
	{C1: Point{0, -34}, C2: Point{3, -36}, To: Point{7, -36}},
	{C1: Point{13, -36}, C2: Point{18, -31}, To: Point{18, -24}},
	{C1: Point{18, -14}, C2: Point{7, -7}, To: Point{0, 0}},
}

// Heart returns the fixed heart glyph. It has no edges; the outline is
// carried in Curves.
func Heart() Geometry {
	curves := make([]Cubic, len(heartCurves))
	copy(curves, heartCurves)
	return Geometry{
		Shape:  ShapeHeart,
		Nodes:  map[string]Node{"": {Path: "", Angle: rootAngle, Leaf: true}},
		Curves: curves,
	}
}
