package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// World owns a Chipmunk space and the bodies created through it.
type World struct {
	space  *cp.Space
	cfg    Config
	log    *zap.Logger
	bodies map[*cp.Body]*Body
}

// NewWorld creates a physics world. A nil logger discards output.
func NewWorld(cfg Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()

	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})
	if cfg.SleepTimeThreshold > 0 {
		space.SleepTimeThreshold = cfg.SleepTimeThreshold
	}
	space.IdleSpeedThreshold = cfg.IdleSpeedThreshold

	return &World{
		space:  space,
		cfg:    cfg,
		log:    log.Named("physics"),
		bodies: make(map[*cp.Body]*Body),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Config returns the settings the world was built with.
func (w *World) Config() Config {
	if w == nil {
		return DefaultConfig()
	}
	return w.cfg
}

// NewBody creates a dynamic body at position (simulation units) and adds it
// to the space.
func (w *World) NewBody(position cp.Vector, rotation float64) *Body {
	if w == nil || w.space == nil {
		return nil
	}

	mass := w.cfg.BodyMass
	moment := cp.MomentForBox(mass, 1, 1)
	cpBody := cp.NewBody(mass, moment)
	cpBody.SetPosition(position)
	cpBody.SetAngle(rotation)
	w.space.AddBody(cpBody)

	b := &Body{body: cpBody, world: w, mass: mass, moment: moment}
	cpBody.UserData = b
	w.bodies[cpBody] = b

	w.log.Debug("body added",
		zap.Float64("x", position.X),
		zap.Float64("y", position.Y),
		zap.Float64("rotation", rotation),
		zap.Int("bodies", len(w.bodies)),
	)
	return b
}

// RemoveBody detaches a body's constraints and shapes and removes it from
// the space. It reports false when the body does not belong to this world.
func (w *World) RemoveBody(b *Body) bool {
	if w == nil || w.space == nil || b == nil || b.body == nil {
		return false
	}
	if _, ok := w.bodies[b.body]; !ok {
		return false
	}

	var constraints []*cp.Constraint
	b.body.EachConstraint(func(c *cp.Constraint) {
		constraints = append(constraints, c)
	})
	for _, c := range constraints {
		w.space.RemoveConstraint(c)
	}

	var shapes []*cp.Shape
	b.body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}

	w.space.RemoveBody(b.body)
	delete(w.bodies, b.body)
	b.world = nil

	w.log.Debug("body removed",
		zap.Int("shapes", len(shapes)),
		zap.Int("constraints", len(constraints)),
		zap.Int("bodies", len(w.bodies)),
	)
	return true
}

// Contains reports whether b is registered with this world.
func (w *World) Contains(b *Body) bool {
	if w == nil || b == nil || b.body == nil {
		return false
	}
	_, ok := w.bodies[b.body]
	return ok
}

// Bodies returns the number of registered bodies.
func (w *World) Bodies() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// Step advances the simulation. dt is clamped to MaxStepDelta so a long
// frame cannot tunnel bodies through each other.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(math.Min(dt, w.cfg.MaxStepDelta))
}

// Clear removes every registered body.
func (w *World) Clear() {
	if w == nil {
		return
	}
	bodies := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		bodies = append(bodies, b)
	}
	for _, b := range bodies {
		w.RemoveBody(b)
	}
}
