package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestNewLeaderState(t *testing.T) {
	cfg := DefaultConfig()
	l := NewLeaderState(0, cfg)

	assert.Equal(t, 0, l.AgentIndex)
	assert.Equal(t, ToRight, l.Direction)
	assert.InDelta(t, 72.0, l.TargetX, 1e-9)
	assert.InDelta(t, 7.2, l.SineAmplitude, 1e-9)
	assert.Equal(t, DefaultSineFrequency, l.SineFrequency)
	assert.Zero(t, l.SineTime)
}

func TestLeaderState_Advance(t *testing.T) {
	cfg := DefaultConfig()
	l := NewLeaderState(0, cfg)
	leader := NewLeader(cfg)

	leader.Pos.X = cfg.Width*0.9 - 0.001
	assert.False(t, l.Advance(&leader, cfg), "no turn before the right end")
	assert.Equal(t, ToRight, l.Direction)
	assert.InDelta(t, DefaultSineFrequency, l.SineTime, 1e-12)

	leader.Pos.X = cfg.Width * 0.9
	assert.True(t, l.Advance(&leader, cfg), "turns exactly at the right end")
	assert.Equal(t, ToLeft, l.Direction)
	assert.InDelta(t, cfg.Width*0.1, l.TargetX, 1e-9)

	leader.Pos.X = cfg.Width * 0.5
	assert.False(t, l.Advance(&leader, cfg))
	assert.Equal(t, ToLeft, l.Direction)

	leader.Pos.X = cfg.Width * 0.1
	assert.True(t, l.Advance(&leader, cfg), "turns exactly at the left end")
	assert.Equal(t, ToRight, l.Direction)
	assert.InDelta(t, cfg.Width*0.9, l.TargetX, 1e-9)
	assert.InDelta(t, 4*DefaultSineFrequency, l.SineTime, 1e-12)
}

func TestLeaderState_Retarget(t *testing.T) {
	cfg := DefaultConfig()
	l := NewLeaderState(0, cfg)
	l.Direction = ToLeft

	cfg.Width = 200
	cfg.Height = 50
	l.Retarget(cfg)

	assert.InDelta(t, 20.0, l.TargetX, 1e-9)
	assert.InDelta(t, 15.0, l.SineAmplitude, 1e-9)
}

func TestLeaderState_PatrolTarget(t *testing.T) {
	cfg := DefaultConfig()
	l := NewLeaderState(0, cfg)

	got := l.PatrolTarget(cfg)
	assert.InDelta(t, 72.0, got.X, 1e-9)
	assert.InDelta(t, 12.0, got.Y, 1e-9, "mid height at phase 0")

	l.SineTime = math.Pi / 2
	assert.InDelta(t, 19.2, l.PatrolTarget(cfg).Y, 1e-9)

	l.SineAmplitude = 100
	assert.Equal(t, cfg.Height, l.PatrolTarget(cfg).Y, "clamped to the arena")
	l.SineTime = -math.Pi / 2
	assert.Equal(t, 0.0, l.PatrolTarget(cfg).Y)
}

func TestLeaderState_PatrolForce(t *testing.T) {
	cfg := DefaultConfig()
	l := NewLeaderState(0, cfg)
	leader := NewLeader(cfg)

	f := l.PatrolForce(&leader, cfg)
	assert.Greater(t, f.X, 0.0, "the target is to the right")
	assert.LessOrEqual(t, f.Len(), cfg.MaxForce+geometry.Epsilon)

	leader.Pos = l.PatrolTarget(cfg)
	assert.Equal(t, geometry.Zero, l.PatrolForce(&leader, cfg))
}

func TestFollowForce(t *testing.T) {
	cfg := DefaultConfig()
	leader := &Boid{Pos: geometry.Vector2D{X: 40, Y: 12}, Vel: geometry.Vector2D{X: 1}, IsLeader: true}

	t.Run("trails behind the heading", func(t *testing.T) {
		follower := &Boid{Pos: geometry.Vector2D{X: 20, Y: 12}}
		got := FollowForce(leader, follower, cfg)
		want := geometry.Vector2D{X: cfg.MaxForce * 0.7}
		assert.True(t, got.Eq(want), "got %v; want %v", got, want)
	})

	t.Run("already at the follow point", func(t *testing.T) {
		follower := &Boid{Pos: geometry.Vector2D{X: 40 - FollowDistance, Y: 12}}
		assert.Equal(t, geometry.Zero, FollowForce(leader, follower, cfg))
	})

	t.Run("overshooting follower is pulled back", func(t *testing.T) {
		follower := &Boid{Pos: geometry.Vector2D{X: 45, Y: 12}}
		got := FollowForce(leader, follower, cfg)
		assert.Less(t, got.X, 0.0)
		assert.LessOrEqual(t, got.Len(), cfg.MaxForce*0.7+geometry.Epsilon)
	})

	t.Run("resting leader is the target itself", func(t *testing.T) {
		still := &Boid{Pos: geometry.Vector2D{X: 40, Y: 12}, IsLeader: true}
		follower := &Boid{Pos: geometry.Vector2D{X: 40, Y: 2}}
		got := FollowForce(still, follower, cfg)
		assert.Greater(t, got.Y, 0.0)
		assert.InDelta(t, 0.0, got.X, 1e-12)
	})
}

func TestPatrolDirection_String(t *testing.T) {
	assert.Equal(t, "→ right", ToRight.String())
	assert.Equal(t, "← left", ToLeft.String())
	assert.Equal(t, "unknown", PatrolDirection(7).String())
}
