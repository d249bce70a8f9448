package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// followWeight is the weight of the follow-the-leader force for flock members,
// independent of the configured rule weights.
const followWeight = 1.5

// Canvas changes below these thresholds only move the walls (see FitCanvas).
const (
	refitWidthDelta  = 5.0
	refitHeightDelta = 3.0
)

// ErrNoBoids is returned when a simulation would start without its leader.
var ErrNoBoids = errors.New("a simulation needs at least one boid (the leader)")

// Simulation owns the flock and runs it one tick at a time.
// It is not safe for concurrent use: a single owner (a game loop, a WorldActor)
// must serialize the calls.
type Simulation struct {
	id     string
	cfg    Config
	boids  []Boid
	leader *LeaderState
	ticks  uint64

	// forces is the per-tick buffer of the compute phase, reused between ticks
	forces []geometry.Vector2D

	rng    *rand.Rand
	logger log.Logger
}

// Option customizes a Simulation at construction.
type Option func(*Simulation)

// WithRand sets the random source used to place new boids.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) {
		s.rng = rng
	}
}

// WithSeed makes placement reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger log.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// New builds the leader at index 0 and cfg.NumBoids-1 flock members.
// A nil cfg means DefaultConfig.
func New(cfg *Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NumBoids == 0 {
		return nil, ErrNoBoids
	}

	s := &Simulation{
		id:     uuid.NewString(),
		cfg:    *cfg,
		logger: log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s.populate()
	s.logger.Debugf("[%s] simulation created: %d boids in %.0fx%.0f", s.id, len(s.boids), s.cfg.Width, s.cfg.Height)
	return s, nil
}

func (s *Simulation) populate() {
	s.boids = s.boids[:0]
	s.boids = append(s.boids, NewLeader(&s.cfg))
	for i := 1; i < s.cfg.NumBoids; i++ {
		s.boids = append(s.boids, NewBoid(&s.cfg, s.rng))
	}
	s.leader = NewLeaderState(0, &s.cfg)
}

// Update advances the simulation by exactly one tick.
//
// Every force is computed from the state committed by the previous tick before
// any boid moves, so the order of the boids does not matter.
func (s *Simulation) Update() {
	s.advanceLeader()

	if cap(s.forces) < len(s.boids) {
		s.forces = make([]geometry.Vector2D, len(s.boids))
	}
	s.forces = s.forces[:len(s.boids)]

	leader, hasLeader := s.leaderBoid()
	for i := range s.boids {
		s.forces[i] = s.forceFor(i, leader, hasLeader)
	}

	for i := range s.boids {
		s.boids[i].ApplyForce(s.forces[i])
		s.boids[i].Update(&s.cfg)
	}
	s.ticks++
}

func (s *Simulation) advanceLeader() {
	leader, ok := s.leaderBoid()
	if !ok {
		return
	}
	if s.leader.Advance(leader, &s.cfg) {
		s.logger.Debugf("[%s] tick %d: leader turned %s at x=%.1f", s.id, s.ticks, s.leader.Direction, leader.Pos.X)
	}
}

func (s *Simulation) forceFor(i int, leader *Boid, hasLeader bool) geometry.Vector2D {
	me := &s.boids[i]
	if me.IsLeader {
		if hasLeader && i == s.leader.AgentIndex {
			return s.leader.PatrolForce(me, &s.cfg)
		}
		return geometry.Zero
	}

	force := FlockingForce(s.boids, i, &s.cfg)
	if hasLeader {
		force.AddAssign(FollowForce(leader, me, &s.cfg).Mul(followWeight))
	}
	return force
}

// leaderBoid resolves the leader index, reporting false when there is no leader
// or when the index no longer points inside the flock.
func (s *Simulation) leaderBoid() (*Boid, bool) {
	if s.leader == nil {
		return nil, false
	}
	idx := s.leader.AgentIndex
	if idx < 0 || idx >= len(s.boids) {
		return nil, false
	}
	return &s.boids[idx], true
}

// Reset throws the flock away and starts over from the configured population.
func (s *Simulation) Reset() {
	s.populate()
	s.ticks = 0
	s.logger.Debugf("[%s] simulation reset: %d boids", s.id, len(s.boids))
}

// Resize grows the flock with random boids or truncates it from the tail.
// A non-positive n never shrinks the flock, so the leader at index 0 survives.
func (s *Simulation) Resize(n int) {
	if n == len(s.boids) {
		return
	}
	s.resizePopulation(n)
	s.retargetLeader()
}

func (s *Simulation) resizePopulation(n int) {
	before := len(s.boids)
	switch {
	case n > before:
		for len(s.boids) < n {
			s.boids = append(s.boids, NewBoid(&s.cfg, s.rng))
		}
	case n > 0:
		s.boids = s.boids[:n]
	}
	if len(s.boids) != before {
		s.logger.Debugf("[%s] flock resized from %d to %d boids", s.id, before, len(s.boids))
	}
}

func (s *Simulation) retargetLeader() {
	if s.leader != nil {
		s.leader.Retarget(&s.cfg)
	}
}

// Reconfigure replaces the whole configuration and resizes the flock to match it.
func (s *Simulation) Reconfigure(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NumBoids == 0 {
		return ErrNoBoids
	}
	s.cfg = *cfg
	s.resizePopulation(cfg.NumBoids)
	s.retargetLeader()
	s.logger.Debugf("[%s] reconfigured: %d boids in %.0fx%.0f", s.id, len(s.boids), s.cfg.Width, s.cfg.Height)
	return nil
}

// SetBounds moves the walls. It is meant for a renderer whose drawing area
// changed; boids only feel the new walls from the next tick on.
func (s *Simulation) SetBounds(width, height float64) error {
	if !validSide(width) || !validSide(height) {
		return fmt.Errorf("%w: bounds %.1fx%.1f", ErrInvalidConfig, width, height)
	}
	s.cfg.Width = width
	s.cfg.Height = height
	return nil
}

// FitCanvas adapts the simulation to a canvas of width x height cells.
// Small changes only move the walls; significant ones resize the population too,
// keeping the current weights and speeds.
func (s *Simulation) FitCanvas(width, height float64) error {
	if math.Abs(s.cfg.Width-width) <= refitWidthDelta && math.Abs(s.cfg.Height-height) <= refitHeightDelta {
		return s.SetBounds(width, height)
	}

	area := ConfigForArea(int(width/0.75), int(height))
	cfg := s.cfg
	cfg.Width = area.Width
	cfg.Height = area.Height
	cfg.NumBoids = area.NumBoids
	cfg.SeparationRadius = area.SeparationRadius
	return s.Reconfigure(&cfg)
}

// ID identifies this simulation run in logs.
func (s *Simulation) ID() string {
	return s.id
}

// Config returns a copy of the current configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Boids returns a copy of the flock, the leader first.
func (s *Simulation) Boids() []Boid {
	out := make([]Boid, len(s.boids))
	copy(out, s.boids)
	return out
}

// Len is the current population.
func (s *Simulation) Len() int {
	return len(s.boids)
}

// Leader returns a copy of the leader state while it points at an existing boid.
func (s *Simulation) Leader() (LeaderState, bool) {
	if _, ok := s.leaderBoid(); !ok {
		return LeaderState{}, false
	}
	return *s.leader, true
}

// Ticks is the number of updates since creation or the last Reset.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// AverageSpeed is the mean speed of the flock, leader included.
func (s *Simulation) AverageSpeed() float64 {
	if len(s.boids) == 0 {
		return 0
	}
	total := 0.0
	for i := range s.boids {
		total += s.boids[i].Vel.Len()
	}
	return total / float64(len(s.boids))
}
