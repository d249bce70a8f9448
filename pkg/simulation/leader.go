package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
)

const (
	// FollowDistance is how far behind the leader's heading the flock aims.
	FollowDistance = 8.0
	// DefaultSineFrequency is the phase step of the leader's vertical wave, per tick.
	DefaultSineFrequency = 0.02

	patrolRight    = 0.9 // fraction of the width where a rightward leg ends
	patrolLeft     = 0.1 // fraction of the width where a leftward leg ends
	amplitudeRatio = 0.3 // wave amplitude as a fraction of the height

	followSpeedRatio = 0.8
	followForceRatio = 0.7
)

// PatrolDirection is the state of the leader's patrol state machine.
type PatrolDirection int

const (
	ToRight PatrolDirection = iota
	ToLeft
)

func (d PatrolDirection) String() string {
	switch d {
	case ToRight:
		return "→ right"
	case ToLeft:
		return "← left"
	default:
		return "unknown"
	}
}

// LeaderState drives the leader boid. AgentIndex is a plain index into the
// simulation's boids and must be checked against the current population before use.
type LeaderState struct {
	AgentIndex    int
	Direction     PatrolDirection
	TargetX       float64
	SineTime      float64
	SineFrequency float64
	SineAmplitude float64
}

// NewLeaderState starts a rightward patrol for the boid at index.
func NewLeaderState(index int, cfg *Config) *LeaderState {
	return &LeaderState{
		AgentIndex:    index,
		Direction:     ToRight,
		TargetX:       cfg.Width * patrolRight,
		SineFrequency: DefaultSineFrequency,
		SineAmplitude: cfg.Height * amplitudeRatio,
	}
}

// Advance moves the wave phase forward and flips the direction once the leader
// has reached the end of its current leg. It reports whether the leader turned.
func (l *LeaderState) Advance(leader *Boid, cfg *Config) bool {
	l.SineTime += l.SineFrequency

	switch l.Direction {
	case ToRight:
		if leader.Pos.X >= cfg.Width*patrolRight {
			l.Direction = ToLeft
			l.TargetX = cfg.Width * patrolLeft
			return true
		}
	case ToLeft:
		if leader.Pos.X <= cfg.Width*patrolLeft {
			l.Direction = ToRight
			l.TargetX = cfg.Width * patrolRight
			return true
		}
	}
	return false
}

// Retarget recomputes the leg end and the wave amplitude after the arena changed size.
func (l *LeaderState) Retarget(cfg *Config) {
	if l.Direction == ToRight {
		l.TargetX = cfg.Width * patrolRight
	} else {
		l.TargetX = cfg.Width * patrolLeft
	}
	l.SineAmplitude = cfg.Height * amplitudeRatio
}

// PatrolTarget is the point the leader currently steers to: the end of its leg
// horizontally, a sine wave around mid height vertically.
func (l *LeaderState) PatrolTarget(cfg *Config) geometry.Vector2D {
	y := cfg.Height*0.5 + math.Sin(l.SineTime)*l.SineAmplitude
	return geometry.Vector2D{X: l.TargetX, Y: clamp(y, 0, cfg.Height)}
}

// PatrolForce steers the leader toward its patrol target.
func (l *LeaderState) PatrolForce(leader *Boid, cfg *Config) geometry.Vector2D {
	target := l.PatrolTarget(cfg)
	if target.Sub(leader.Pos).IsZero() {
		return geometry.Zero
	}
	return Seek(leader, target, cfg.MaxSpeed, cfg.MaxForce)
}

// FollowForce steers follower toward a point trailing FollowDistance behind the
// leader's heading, a bit slower and softer than a plain seek.
func FollowForce(leader, follower *Boid, cfg *Config) geometry.Vector2D {
	offset := leader.Vel.Normalize().Mul(-FollowDistance)
	target := leader.Pos.Add(offset)

	desired := target.Sub(follower.Pos)
	if desired.IsZero() {
		return geometry.Zero
	}
	desired = desired.Normalize().Mul(cfg.MaxSpeed * followSpeedRatio)
	return desired.Sub(follower.Vel).Limit(cfg.MaxForce * followForceRatio)
}
