package level

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/physics"
	"go.uber.org/zap"
)

// OscillateSystem swings kinematic bodies back and forth along x by writing
// their transforms.
type OscillateSystem struct {
	level     *Level
	amplitude float64
	frequency float64
	elapsed   float64
	origins   map[*Body]cp.Vector
}

func NewOscillateSystem(l *Level, amplitude, frequency float64) *OscillateSystem {
	return &OscillateSystem{
		level:     l,
		amplitude: amplitude,
		frequency: frequency,
		origins:   make(map[*Body]cp.Vector),
	}
}

func (o *OscillateSystem) Update(s *ecs.Scene) {
	if o == nil || o.level == nil {
		return
	}
	o.elapsed += s.DeltaTime()
	offset := o.amplitude * math.Sin(2*math.Pi*o.frequency*o.elapsed)

	held, _ := o.level.Drag.Held()
	for _, b := range o.level.Bodies {
		if b.Type != physics.BodyTypeKinematic || b == held || b.Sync.Body() == nil {
			continue
		}
		origin, ok := o.origins[b]
		if !ok {
			origin = b.Entity.Transform().Position()
			o.origins[b] = origin
		}
		b.Entity.Transform().SetPosition(cp.Vector{X: origin.X + offset, Y: origin.Y})
	}
}

// EventLogSystem drains scene lifecycle events into the log.
type EventLogSystem struct {
	log *zap.Logger
}

func NewEventLogSystem(log *zap.Logger) *EventLogSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventLogSystem{log: log.Named("events")}
}

func (l *EventLogSystem) Update(s *ecs.Scene) {
	for _, evt := range s.Events().Drain() {
		fields := []zap.Field{
			zap.String("type", string(evt.Type)),
			zap.Stringer("entity", evt.Entity),
		}
		switch data := evt.Data.(type) {
		case string:
			fields = append(fields, zap.String("name", data))
		case ecs.Component:
			fields = append(fields, zap.String("component", fmt.Sprintf("%T", data)))
		}
		l.log.Debug("scene event", fields...)
	}
}
