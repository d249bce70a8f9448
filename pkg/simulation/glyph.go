package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
)

// LeaderGlyph marks the leader whatever its heading.
const LeaderGlyph = '★'

// Glyph maps a velocity to one of 8 direction characters.
// Each sector is 45° wide and centered on a multiple of π/4 (y grows downward),
// closed at its lower bound and open at its upper one. West takes both ±π.
// A zero velocity reads as heading east.
func Glyph(vel geometry.Vector2D, isLeader bool) rune {
	if isLeader {
		return LeaderGlyph
	}
	return headingGlyph(math.Atan2(vel.Y, vel.X))
}

// headingGlyph buckets an angle in [-π, π].
func headingGlyph(angle float64) rune {
	pi := math.Pi

	switch {
	case angle >= -pi/8 && angle < pi/8:
		return '>'
	case angle >= pi/8 && angle < 3*pi/8:
		return '\\'
	case angle >= 3*pi/8 && angle < 5*pi/8:
		return 'v'
	case angle >= 5*pi/8 && angle < 7*pi/8:
		return '/'
	case angle >= 7*pi/8 || angle < -7*pi/8:
		return '<'
	case angle >= -7*pi/8 && angle < -5*pi/8:
		return '/'
	case angle >= -5*pi/8 && angle < -3*pi/8:
		return '^'
	default:
		return '\\'
	}
}
