package simulation

import "github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"

// The three rules scan the whole flock (brute force, O(n) per call).
// A neighbor at exactly the same position is skipped: it has no direction to flee from.

// forEachNeighbor calls fn for every other boid strictly closer than radius.
func forEachNeighbor(boids []Boid, index int, radius float64, fn func(other *Boid, dist float64)) {
	me := &boids[index]
	for i := range boids {
		if i == index {
			continue
		}
		other := &boids[i]
		dist := me.Pos.DistanceTo(other.Pos)
		if dist > 0 && dist < radius {
			fn(other, dist)
		}
	}
}

// Separation steers away from crowding neighbors, the closest pushing the hardest.
func Separation(boids []Boid, index int, cfg *Config) geometry.Vector2D {
	me := &boids[index]
	var steer geometry.Vector2D
	count := 0

	forEachNeighbor(boids, index, cfg.SeparationRadius, func(other *Boid, dist float64) {
		away := me.Pos.Sub(other.Pos).Normalize().Div(dist)
		steer.AddAssign(away)
		count++
	})
	if count == 0 {
		return geometry.Zero
	}

	steer = steer.Div(float64(count)).Normalize().Mul(cfg.MaxSpeed)
	return steer.Sub(me.Vel).Limit(cfg.MaxForce)
}

// Alignment steers toward the average heading of the neighbors.
func Alignment(boids []Boid, index int, cfg *Config) geometry.Vector2D {
	me := &boids[index]
	var sum geometry.Vector2D
	count := 0

	forEachNeighbor(boids, index, cfg.AlignmentRadius, func(other *Boid, _ float64) {
		sum.AddAssign(other.Vel)
		count++
	})
	if count == 0 {
		return geometry.Zero
	}

	desired := sum.Div(float64(count)).Normalize().Mul(cfg.MaxSpeed)
	return desired.Sub(me.Vel).Limit(cfg.MaxForce)
}

// Cohesion steers toward the centroid of the neighbors.
func Cohesion(boids []Boid, index int, cfg *Config) geometry.Vector2D {
	var sum geometry.Vector2D
	count := 0

	forEachNeighbor(boids, index, cfg.CohesionRadius, func(other *Boid, _ float64) {
		sum.AddAssign(other.Pos)
		count++
	})
	if count == 0 {
		return geometry.Zero
	}

	return Seek(&boids[index], sum.Div(float64(count)), cfg.MaxSpeed, cfg.MaxForce)
}

// Seek returns the steering force that turns b toward target at full speed.
func Seek(b *Boid, target geometry.Vector2D, maxSpeed, maxForce float64) geometry.Vector2D {
	desired := target.Sub(b.Pos).Normalize().Mul(maxSpeed)
	return desired.Sub(b.Vel).Limit(maxForce)
}

// FlockingForce combines the three rules with the configured weights.
func FlockingForce(boids []Boid, index int, cfg *Config) geometry.Vector2D {
	force := Separation(boids, index, cfg).Mul(cfg.SeparationWeight)
	force.AddAssign(Alignment(boids, index, cfg).Mul(cfg.AlignmentWeight))
	force.AddAssign(Cohesion(boids, index, cfg).Mul(cfg.CohesionWeight))
	return force
}
