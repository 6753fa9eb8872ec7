package gamefw

// translateAffine returns a pure translation matrix.
func translateAffine(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}

// scaleAffine returns a uniform scale matrix about the origin.
func scaleAffine(s float64) [6]float64 {
	return [6]float64{s, 0, 0, s, 0, 0}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformVec applies an affine matrix to a Vec2.
func transformVec(m [6]float64, v Vec2) Vec2 {
	x, y := transformPoint(m, v.X, v.Y)
	return Vec2{x, y}
}

// transformDelta applies only the linear part of m, for displacements.
func transformDelta(m [6]float64, v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y, m[1]*v.X + m[3]*v.Y}
}
