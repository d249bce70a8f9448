package simulation

import "github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"

// AgentView is the read-only part of a boid a renderer needs.
type AgentView struct {
	Pos      geometry.Vector2D
	Vel      geometry.Vector2D
	IsLeader bool
	Glyph    rune
}

// Snapshot is a self-contained copy of the simulation state, safe to hand to
// another goroutine.
type Snapshot struct {
	ID           string
	Tick         uint64
	Width        float64
	Height       float64
	Agents       []AgentView
	HasLeader    bool
	Leader       LeaderState
	PatrolTarget geometry.Vector2D
	AverageSpeed float64
	Config       Config
	Paused       bool
}

// Snapshot copies the current state for a renderer.
func (s *Simulation) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:           s.id,
		Tick:         s.ticks,
		Width:        s.cfg.Width,
		Height:       s.cfg.Height,
		Agents:       make([]AgentView, len(s.boids)),
		AverageSpeed: s.AverageSpeed(),
		Config:       s.cfg,
	}
	for i := range s.boids {
		b := &s.boids[i]
		snap.Agents[i] = AgentView{
			Pos:      b.Pos,
			Vel:      b.Vel,
			IsLeader: b.IsLeader,
			Glyph:    b.Glyph(),
		}
	}
	if leader, ok := s.Leader(); ok {
		snap.HasLeader = true
		snap.Leader = leader
		snap.PatrolTarget = leader.PatrolTarget(&s.cfg)
	}
	return snap
}
