package color

// Smoothstep implements the parameterless "cubic(t, space)" form of
// spec §3's Interpolate: a plain ease-in-ease-out cubic with no
// control points.
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// CubicBezier reparameterizes t through a single-axis cubic Bézier
// curve anchored at (0,0) and (1,1) with control points (1/3, p1) and
// (2/3, p2), the shape of spec §3's "cubic(p1,p2)(t,space)" form (the
// same two-control-point convention as a CSS cubic-bezier() easing
// function). It solves for the curve parameter u such that x(u) == t,
// then returns y(u).
func CubicBezier(p1, p2, t float64) float64 {
	t = clamp01(t)
	x := func(u float64) float64 {
		mu := 1 - u
		return 3*mu*mu*u*(1.0/3) + 3*mu*u*u*(2.0/3) + u*u*u
	}
	y := func(u float64) float64 {
		mu := 1 - u
		return 3*mu*mu*u*p1 + 3*mu*u*u*p2 + u*u*u
	}

	lo, hi := 0.0, 1.0
	for i := 0; i < 32; i++ {
		mid := (lo + hi) / 2
		if x(mid) < t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return y((lo + hi) / 2)
}
