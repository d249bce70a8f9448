package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
)

// Boid is the kinematic state of one agent of the flock.
type Boid struct {
	Pos      geometry.Vector2D
	Vel      geometry.Vector2D
	Acc      geometry.Vector2D
	IsLeader bool
}

// NewBoid creates a flock member at a random position, heading in a random
// direction at half the maximum speed.
func NewBoid(cfg *Config, rng *rand.Rand) Boid {
	return Boid{
		Pos: geometry.RandomInRect(rng, cfg.Width, cfg.Height),
		Vel: geometry.RandomUnit(rng).Mul(cfg.MaxSpeed * 0.5),
	}
}

// NewLeader creates the leader at its patrol start: left side, mid height, heading right.
func NewLeader(cfg *Config) Boid {
	return Boid{
		Pos:      geometry.Vector2D{X: cfg.Width * 0.1, Y: cfg.Height * 0.5},
		Vel:      geometry.Vector2D{X: cfg.MaxSpeed * 0.6},
		IsLeader: true,
	}
}

// ApplyForce accumulates f into the acceleration until the next Update.
func (b *Boid) ApplyForce(f geometry.Vector2D) {
	b.Acc.AddAssign(f)
}

// Update integrates one tick: velocity, speed cap, position, then the walls.
func (b *Boid) Update(cfg *Config) {
	b.Vel = b.Vel.Add(b.Acc).Limit(cfg.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel)
	b.Acc = geometry.Zero

	b.BounceOffWalls(cfg.Width, cfg.Height)
}

// BounceOffWalls clamps the position inside the margin box and points the
// velocity back inside on every axis that touched a wall.
func (b *Boid) BounceOffWalls(width, height float64) {
	b.Pos.X, b.Vel.X = bounceAxis(b.Pos.X, b.Vel.X, width)
	b.Pos.Y, b.Vel.Y = bounceAxis(b.Pos.Y, b.Vel.Y, height)
}

func bounceAxis(pos, vel, bound float64) (float64, float64) {
	if pos < Margin {
		return Margin, math.Abs(vel)
	}
	if pos > bound-Margin {
		return bound - Margin, -math.Abs(vel)
	}
	return pos, vel
}

// Glyph returns the character a renderer uses for this boid.
func (b *Boid) Glyph() rune {
	return Glyph(b.Vel, b.IsLeader)
}
