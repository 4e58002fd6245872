package geom

import "math"

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// NormalizeDegrees wraps an angle into the half-open interval (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return deg
	}
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// AngleBetween returns the unsigned angle between v1 and v2 in degrees, in [0, 180].
// It returns 0 when either vector has zero length.
func AngleBetween(v1, v2 Vec2) float64 {
	mag1 := v1.Magnitude()
	mag2 := v2.Magnitude()
	if mag1 == 0 || mag2 == 0 {
		return 0
	}
	cos := clamp(v1.Dot(v2)/(mag1*mag2), -1, 1)
	return Degrees(math.Acos(cos))
}

// SignedAngleBetween returns the signed rotation from v1 to v2 in degrees, in (-180, 180].
func SignedAngleBetween(v1, v2 Vec2) float64 {
	return NormalizeDegrees(Degrees(v2.Angle() - v1.Angle()))
}

// Angle3 returns the unsigned angle at vertex p2 between the rays p2→p1 and p2→p3.
func Angle3(p1, p2, p3 Vec2) float64 {
	return AngleBetween(p1.Sub(p2), p3.Sub(p2))
}

// SignedAngle3 returns the signed angle at vertex p2, measured from the ray p2→p3
// to the ray p2→p1, in (-180, 180].
func SignedAngle3(p1, p2, p3 Vec2) float64 {
	v1 := p1.Sub(p2)
	v2 := p3.Sub(p2)
	return NormalizeDegrees(Degrees(v1.Angle() - v2.Angle()))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
