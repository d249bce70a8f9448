package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// errUnhandled marks a message the world does not understand.
var errUnhandled = errors.New("unhandled message")

// WorldActor owns a Simulation and serializes every access to it.
// Hosts drive it with messages:
//
//	*durationpb.Duration    one tick (the host frame delta, kept for telemetry)
//	*emptypb.Empty          reset
//	*wrapperspb.Int32Value  resize the flock
//	*structpb.Struct        partial config update, same keys as the JSON config
//	*wrapperspb.BoolValue   pause (true) or resume (false)
//
// After each handled message a Snapshot is offered to the UI channel.
// Ask with a *wrapperspb.StringValue query ("population" or "ticks") to read
// the world back.
type WorldActor struct {
	sim        *Simulation
	snapshotCh chan<- *Snapshot
	paused     bool
	logger     log.Logger

	// --- Benchmark Stats ---
	tickCount   int
	frameTime   time.Duration
	lastLogTime time.Time
}

// NewWorldActor wraps sim; snapshots go to snapshotCh, which may be nil.
func NewWorldActor(sim *Simulation, snapshotCh chan<- *Snapshot) *WorldActor {
	return &WorldActor{
		sim:         sim,
		snapshotCh:  snapshotCh,
		logger:      log.DiscardLogger,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	w.logger = ctx.ActorSystem().Logger()
	w.logger.Infof("World %s is starting with %d boids", w.sim.ID(), w.sim.Len())
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("World Started.")
		w.pushSnapshot()
	case *wrapperspb.StringValue:
		reply, err := w.query(msg.GetValue())
		if err != nil {
			ctx.Unhandled()
			return
		}
		ctx.Response(reply)
	default:
		err := w.handle(msg)
		if errors.Is(err, errUnhandled) {
			ctx.Unhandled()
			return
		}
		if err != nil {
			ctx.Logger().Warnf("world %s rejected %T: %v", w.sim.ID(), msg, err)
		}
		w.logBenchmarks()
		w.pushSnapshot()
	}
}

func (w *WorldActor) PostStop(*actor.Context) error {
	w.logger.Infof("World %s stopped after %d ticks", w.sim.ID(), w.sim.Ticks())
	return nil
}

// handle applies one message to the simulation.
func (w *WorldActor) handle(msg proto.Message) error {
	switch msg := msg.(type) {
	case *durationpb.Duration:
		if w.paused {
			return nil
		}
		w.sim.Update()
		w.tickCount++
		w.frameTime += msg.AsDuration()
	case *emptypb.Empty:
		w.sim.Reset()
	case *wrapperspb.Int32Value:
		w.sim.Resize(int(msg.GetValue()))
	case *wrapperspb.BoolValue:
		w.paused = msg.GetValue()
		w.logger.Debugf("world %s paused=%v", w.sim.ID(), w.paused)
	case *structpb.Struct:
		return w.applyConfig(msg)
	default:
		return fmt.Errorf("%w: %T", errUnhandled, msg)
	}
	return nil
}

// query answers a read-only request.
func (w *WorldActor) query(name string) (proto.Message, error) {
	switch name {
	case "population":
		return wrapperspb.Int32(int32(w.sim.Len())), nil
	case "ticks":
		return wrapperspb.UInt64(w.sim.Ticks()), nil
	}
	return nil, fmt.Errorf("%w: query %q", errUnhandled, name)
}

// applyConfig merges a partial configuration. Changing only the arena size
// moves the walls; any other field reconfigures the whole simulation.
func (w *WorldActor) applyConfig(msg *structpb.Struct) error {
	doc, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode config update: %w", err)
	}
	cfg, err := w.sim.Config().Merge(doc)
	if err != nil {
		return err
	}

	boundsOnly := true
	for key := range msg.GetFields() {
		if key != "width" && key != "height" {
			boundsOnly = false
			break
		}
	}
	if boundsOnly {
		return w.sim.SetBounds(cfg.Width, cfg.Height)
	}
	return w.sim.Reconfigure(cfg)
}

func (w *WorldActor) snapshot() *Snapshot {
	snap := w.sim.Snapshot()
	snap.Paused = w.paused
	return snap
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.snapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) logBenchmarks() {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	avgFrame := time.Duration(0)
	if w.tickCount > 0 {
		avgFrame = w.frameTime / time.Duration(w.tickCount)
	}
	w.logger.Infof("📊 TICK RATE: %d/sec | Boids: %d | avg frame: %s | avg speed: %.2f",
		w.tickCount, w.sim.Len(), avgFrame, w.sim.AverageSpeed())
	w.tickCount = 0
	w.frameTime = 0
	w.lastLogTime = time.Now()
}
