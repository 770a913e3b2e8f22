package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldNewBody(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)

	b := w.NewBody(cp.Vector{X: 1.5, Y: -2}, 0.75)
	require.NotNil(t, b)

	assert.Equal(t, 1, w.Bodies())
	assert.True(t, w.Contains(b))
	assert.Same(t, w, b.World())
	assert.InDelta(t, 1.5, b.Position().X, 1e-9)
	assert.InDelta(t, -2, b.Position().Y, 1e-9)
	assert.InDelta(t, 0.75, b.Rotation(), 1e-9)
	assert.Equal(t, BodyTypeDynamic, b.BodyType())
	assert.True(t, b.Awake())
	assert.Same(t, b, b.CP().UserData)
}

func TestWorldRemoveBodyIsIdempotent(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.NewBody(cp.Vector{}, 0)
	require.NotNil(t, b.AddBox(1, 1))

	require.True(t, w.RemoveBody(b))
	assert.Equal(t, 0, w.Bodies())
	assert.False(t, w.Contains(b))
	assert.Nil(t, b.World())

	assert.False(t, w.RemoveBody(b))
	assert.NotPanics(t, b.RemoveFromWorld)
}

func TestWorldRemoveBodyFromOtherWorld(t *testing.T) {
	a := NewWorld(DefaultConfig(), nil)
	other := NewWorld(DefaultConfig(), nil)
	b := a.NewBody(cp.Vector{}, 0)

	assert.False(t, other.RemoveBody(b))
	assert.Equal(t, 1, a.Bodies())
}

func TestWorldRemoveBodyDropsShapes(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.NewBody(cp.Vector{}, 0)
	require.NotNil(t, b.AddBox(1, 1))
	require.NotNil(t, b.AddCircle(0.5))
	require.Equal(t, 2, countShapes(w))

	b.RemoveFromWorld()

	assert.Zero(t, countShapes(w))
}

func countShapes(w *World) int {
	n := 0
	w.Space().EachShape(func(*cp.Shape) { n++ })
	return n
}

func TestWorldStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityY = 10
	cfg.MaxStepDelta = 0.01

	cases := []struct {
		name  string
		dt    float64
		moved bool
	}{
		{"zero", 0, false},
		{"negative", -1, false},
		{"clamped", 10, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(cfg, nil)
			b := w.NewBody(cp.Vector{}, 0)
			// position integrates the velocity from the previous step, so
			// a body at rest only moves on the second step
			w.Step(c.dt)
			w.Step(c.dt)
			if !c.moved {
				assert.Zero(t, b.Position().Y)
				assert.Zero(t, b.CP().Velocity().Y)
				return
			}
			// Two clamped steps of 0.01s under g=10 move g*dt*dt.
			assert.Greater(t, b.Position().Y, 0.0)
			assert.LessOrEqual(t, b.Position().Y, 10*0.01*0.01+1e-12)
		})
	}
}

func TestStaticBodyMoveUpdatesQueries(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.NewBody(cp.Vector{X: 1, Y: 1}, 0)
	b.SetBodyType(BodyTypeStatic)
	require.NotNil(t, b.AddBox(1, 1))

	b.SetPosition(cp.Vector{X: 5, Y: 5})

	hit := w.Space().PointQueryNearest(cp.Vector{X: 5, Y: 5}, 0, cp.SHAPE_FILTER_ALL)
	assert.NotNil(t, hit.Shape, "shape should be found at the new position")
	stale := w.Space().PointQueryNearest(cp.Vector{X: 1, Y: 1}, 0, cp.SHAPE_FILTER_ALL)
	assert.Nil(t, stale.Shape, "shape should be gone from the old position")
	assert.Equal(t, 1, countShapes(w))

	b.SetRotation(math.Pi / 4)
	corner := w.Space().PointQueryNearest(cp.Vector{X: 5, Y: 5.6}, 0, cp.SHAPE_FILTER_ALL)
	assert.NotNil(t, corner.Shape, "rotated box should reach past its old half extent")
}

func TestBodyFallsAsleepWhenIdle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityY = 0
	w := NewWorld(cfg, nil)
	b := w.NewBody(cp.Vector{}, 0)
	b.AddBox(1, 1)

	require.True(t, b.Awake())
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	assert.False(t, b.Awake())

	b.Activate()
	assert.True(t, b.Awake())
}

func TestWorldClear(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	for i := 0; i < 5; i++ {
		w.NewBody(cp.Vector{X: float64(i)}, 0)
	}
	w.Clear()
	assert.Equal(t, 0, w.Bodies())
}

func TestBodySetBodyType(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.NewBody(cp.Vector{}, 0)

	for _, typ := range []BodyType{BodyTypeKinematic, BodyTypeStatic, BodyTypeDynamic} {
		b.SetBodyType(typ)
		assert.Equal(t, typ, b.BodyType(), typ.String())
	}
	assert.Greater(t, b.CP().Mass(), 0.0, "dynamic body must regain mass")
}

func TestNilWorldAndBody(t *testing.T) {
	var w *World
	var b *Body

	assert.Nil(t, w.NewBody(cp.Vector{}, 0))
	assert.False(t, w.RemoveBody(b))
	assert.Zero(t, w.Bodies())
	assert.NotPanics(t, func() { w.Step(1) })
	assert.False(t, b.Awake())
	assert.NotPanics(t, func() {
		b.SetPosition(cp.Vector{X: 1})
		b.SetRotation(1)
		b.RemoveFromWorld()
	})
}
