// Package core provides fundamental types and utilities for the simulation:
// vector math, input frames and the runtime configuration handed to the game
// at startup. It contains no external dependencies so the simulation logic
// stays pure and testable.
package core

import "math"

// Vec3 is a position or velocity in world space. Gameplay happens on the XZ
// plane; Y is carried for the rendering collaborators (obstacle height,
// projectile arcs) and never affects collision.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// LenXZ returns the planar length of the vector.
func (v Vec3) LenXZ() float64 {
	return math.Hypot(v.X, v.Z)
}

// NormXZ returns the vector scaled to planar unit length. The zero vector is
// returned unchanged.
func (v Vec3) NormXZ() Vec3 {
	l := v.LenXZ()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, 0, v.Z / l}
}

// DistXZ returns the planar Euclidean distance between two points.
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// Clamp restricts an integer to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 to [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
