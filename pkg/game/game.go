// Package game renders a flock in an ebiten window and drives it through a WorldActor.
package game

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	panelWidth   = 280
	targetWidth  = 960.0 // arena pixels the scale aims for
	boidSize     = 6.0
	leaderRadius = 7.0
)

var (
	whiteImage  = ebiten.NewImage(3, 3)
	background  = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	leaderColor = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	targetColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	radiusColor = color.RGBA{R: 50, G: 100, B: 255, A: 90}
)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot

	// arena pixels per simulation unit
	scale float64

	panel              *ui.UIPanel
	widgetShowLeader   *ui.Checkbox
	widgetShowTarget   *ui.Checkbox
	widgetShowRadius   *ui.Checkbox
	widgetPause        *ui.Button
	paused             bool
	pendingCommands    []proto.Message
	lastUpdate         time.Time
	lastUpdateDuration time.Duration
	updateAvg          float64 // Rolling average in ms
}

// NewGame spawns a WorldActor for sim in system and builds the control panel.
func NewGame(ctx context.Context, system actor.ActorSystem, sim *simulation.Simulation) (*Game, error) {
	snapshotCh := make(chan *simulation.Snapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(sim, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	cfg := sim.Config()
	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  sim.Snapshot(),
		scale:      math.Max(1, math.Floor(targetWidth/cfg.Width)),
		lastUpdate: time.Now(),
	}
	g.panel = g.buildPanel(&cfg)
	return g, nil
}

func (g *Game) buildPanel(cfg *simulation.Config) *ui.UIPanel {
	panel := ui.NewUIPanel(10, 10, panelWidth-20, math.Max(cfg.Height*g.scale, 600)-20, "Flock Configuration")

	panel.AddSection("Rule Weights")
	panel.AddSlider("Separation", "separationWeight", 0, 5, cfg.SeparationWeight)
	panel.AddSlider("Alignment", "alignmentWeight", 0, 5, cfg.AlignmentWeight)
	panel.AddSlider("Cohesion", "cohesionWeight", 0, 5, cfg.CohesionWeight)
	panel.EndSection()

	panel.AddSection("Neighbor Radii")
	panel.AddSlider("Separation Radius", "separationRadius", 0, cfg.Width/4, cfg.SeparationRadius)
	panel.AddSlider("Alignment Radius", "alignmentRadius", 0, cfg.Width/4, cfg.AlignmentRadius)
	panel.AddSlider("Cohesion Radius", "cohesionRadius", 0, cfg.Width/4, cfg.CohesionRadius)
	panel.EndSection()

	panel.AddSection("Physics")
	panel.AddSlider("Max Speed", "maxSpeed", 0.1, cfg.MaxSpeed*4, cfg.MaxSpeed)
	panel.AddSlider("Max Force", "maxForce", 0, cfg.MaxForce*4, cfg.MaxForce)
	panel.AddIntSlider("Boids", "numBoids", 1, max(cfg.NumBoids*4, 100), cfg.NumBoids)
	panel.EndSection()

	panel.AddSection("Visualization")
	g.widgetShowLeader = panel.AddCheckbox("Show Leader", true)
	g.widgetShowTarget = panel.AddCheckbox("Show Patrol Target", false)
	g.widgetShowRadius = panel.AddCheckbox("Show Separation Radius", false)
	panel.EndSection()

	panel.AddSection("Simulation")
	g.widgetPause = panel.AddToggleButton("Pause", "Resume", g.togglePause)
	panel.AddButton("Reset", func() {
		g.pendingCommands = append(g.pendingCommands, &emptypb.Empty{})
	})
	panel.EndSection()
	return panel
}

func (g *Game) togglePause() {
	g.paused = g.widgetPause.Active
	g.pendingCommands = append(g.pendingCommands, wrapperspb.Bool(g.paused))
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	// Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
	}

	if changes := g.panel.Changes(); changes != nil {
		update, err := structpb.NewStruct(changes)
		if err != nil {
			return fmt.Errorf("failed to encode config update: %w", err)
		}
		g.pendingCommands = append(g.pendingCommands, update)
	}
	for _, cmd := range g.pendingCommands {
		if err := actor.Tell(g.ctx, g.worldPID, cmd); err != nil {
			return fmt.Errorf("failed to send %T to world: %w", cmd, err)
		}
	}
	g.pendingCommands = g.pendingCommands[:0]

	// Trigger Simulation Step
	now := time.Now()
	if err := actor.Tell(g.ctx, g.worldPID, durationpb.New(now.Sub(g.lastUpdate))); err != nil {
		return fmt.Errorf("failed to tick world: %w", err)
	}
	g.lastUpdate = now
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	state := g.lastState
	if state == nil {
		return
	}

	ox, oy := float64(panelWidth), 0.0
	vector.StrokeRect(screen, float32(ox), float32(oy), float32(state.Width*g.scale), float32(state.Height*g.scale), 1, color.RGBA{R: 60, G: 60, B: 80, A: 255}, true)

	for _, agent := range state.Agents {
		x, y := ox+agent.Pos.X*g.scale, oy+agent.Pos.Y*g.scale
		if agent.IsLeader {
			if g.widgetShowLeader.Value {
				vector.StrokeCircle(screen, float32(x), float32(y), leaderRadius, 2, leaderColor, true)
				drawBoid(screen, x, y, agent.Vel.Angle(), leaderColor)
			}
			continue
		}
		if g.widgetShowRadius.Value {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(state.Config.SeparationRadius*g.scale), 1, radiusColor, true)
		}
		drawBoid(screen, x, y, agent.Vel.Angle(), color.RGBA{R: 100, G: 200, B: 255, A: 255})
	}

	if g.widgetShowTarget.Value && state.HasLeader {
		tx, ty := ox+state.PatrolTarget.X*g.scale, oy+state.PatrolTarget.Y*g.scale
		vector.StrokeCircle(screen, float32(tx), float32(ty), 4, 1, targetColor, true)
	}

	g.panel.Draw(screen)
	g.drawStats(screen, state)
}

func (g *Game) drawStats(screen *ebiten.Image, state *simulation.Snapshot) {
	status := "RUNNING"
	if state.Paused {
		status = "PAUSED"
	}
	direction := "none"
	if state.HasLeader {
		direction = state.Leader.Direction.String()
	}
	msg := fmt.Sprintf("%s  tick %d\nBoids: %d\nAvg speed: %.2f\nLeader: %s\n\nFPS: %.1f  TPS: %.1f\nUpdate: %.2fms",
		status, state.Tick,
		len(state.Agents),
		state.AverageSpeed,
		direction,
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.updateAvg)
	w := screen.Bounds().Dx()
	ebitenutil.DebugPrintAt(screen, msg, w-170, 10)
}

// drawBoid draws a triangle pointing along angle.
func drawBoid(screen *ebiten.Image, x, y, angle float64, clr color.RGBA) {
	tipX := x + math.Cos(angle)*boidSize
	tipY := y + math.Sin(angle)*boidSize
	rightX := x + math.Cos(angle+2.5)*boidSize*0.8
	rightY := y + math.Sin(angle+2.5)*boidSize*0.8
	leftX := x + math.Cos(angle-2.5)*boidSize*0.8
	leftY := y + math.Sin(angle-2.5)*boidSize*0.8

	r, gr, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: a},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: a},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: a},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// Layout keeps the panel on the left and the scaled arena on the right.
func (g *Game) Layout(int, int) (int, int) {
	w, h := 80.0, 24.0
	if g.lastState != nil {
		w, h = g.lastState.Width, g.lastState.Height
	}
	return panelWidth + int(w*g.scale), int(math.Max(h*g.scale, 600))
}
