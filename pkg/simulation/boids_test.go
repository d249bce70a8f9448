package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair places two boids on the x axis, dx apart.
func pair(dx float64) []Boid {
	return []Boid{
		{Pos: geometry.Vector2D{X: 10, Y: 10}},
		{Pos: geometry.Vector2D{X: 10 + dx, Y: 10}},
	}
}

func TestSeparation_PushesApart(t *testing.T) {
	cfg := DefaultConfig()
	boids := pair(0.5)

	left := Separation(boids, 0, cfg)
	right := Separation(boids, 1, cfg)

	assert.Negative(t, left.X, "left boid is pushed toward -x")
	assert.Positive(t, right.X, "right boid is pushed toward +x")
	for i, f := range []geometry.Vector2D{left, right} {
		assert.LessOrEqual(t, f.Len(), cfg.MaxForce+geometry.Epsilon, "boid %d force exceeds MaxForce", i)
	}
}

func TestRules_NoNeighborGivesZero(t *testing.T) {
	cfg := DefaultConfig()
	boids := pair(50)
	boids[1].Vel = geometry.Vector2D{X: 1}

	rules := map[string]func([]Boid, int, *Config) geometry.Vector2D{
		"Separation": Separation,
		"Alignment":  Alignment,
		"Cohesion":   Cohesion,
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, geometry.Zero, rule(boids, 0, cfg))
		})
	}

	t.Run("alone", func(t *testing.T) {
		assert.Equal(t, geometry.Zero, FlockingForce(boids[:1], 0, cfg))
	})
}

func TestRules_SamePositionIsIgnored(t *testing.T) {
	cfg := DefaultConfig()
	boids := pair(0)

	assert.Equal(t, geometry.Zero, Separation(boids, 0, cfg), "a boid at the same spot is not a neighbor")
}

func TestRules_RadiusIsExclusive(t *testing.T) {
	cfg := DefaultConfig()
	boids := pair(cfg.CohesionRadius)

	assert.Equal(t, geometry.Zero, Cohesion(boids, 0, cfg), "a neighbor exactly at the radius is ignored")
}

func TestAlignment_MatchesHeading(t *testing.T) {
	cfg := DefaultConfig()
	boids := pair(2)
	boids[1].Vel = geometry.Vector2D{X: 0, Y: 1}

	got := Alignment(boids, 0, cfg)

	assert.Positive(t, got.Y)
	assert.Zero(t, got.X)
	assert.LessOrEqual(t, got.Len(), cfg.MaxForce+geometry.Epsilon)
}

func TestCohesion_PullsTowardCentroid(t *testing.T) {
	cfg := DefaultConfig()
	boids := []Boid{
		{Pos: geometry.Vector2D{X: 10, Y: 10}},
		{Pos: geometry.Vector2D{X: 13, Y: 9}},
		{Pos: geometry.Vector2D{X: 13, Y: 11}},
	}

	got := Cohesion(boids, 0, cfg)

	assert.Positive(t, got.X)
	assert.InDelta(t, 0, got.Y, geometry.Epsilon, "the centroid is level with the boid")
}

func TestSeek(t *testing.T) {
	b := &Boid{Pos: geometry.Vector2D{X: 0, Y: 0}, Vel: geometry.Vector2D{X: 0, Y: 1}}

	got := Seek(b, geometry.Vector2D{X: 10, Y: 0}, 1.5, 0.1)

	// desired (1.5, 0) minus velocity (0, 1), capped at 0.1
	assertVec(t, geometry.Vector2D{X: 1.5, Y: -1}.Normalize().Mul(0.1), got)
}

func TestFlockingForce_UsesWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlignmentWeight = 0
	cfg.CohesionWeight = 0
	boids := pair(0.5)

	got := FlockingForce(boids, 0, cfg)

	assertVec(t, Separation(boids, 0, cfg).Mul(cfg.SeparationWeight), got)
}

func BenchmarkFlockingForce(b *testing.B) {
	cfg := DefaultConfig()
	cfg.NumBoids = 100
	sim, err := New(cfg, WithSeed(1))
	require.NoError(b, err)
	boids := sim.Boids()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FlockingForce(boids, i%len(boids), cfg)
	}
}
