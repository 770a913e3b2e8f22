package level

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/common"
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/physics"
	"github.com/milk9111/bodysync/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 1.0 / 60

func testSpec(host prefabs.WorldHost) *prefabs.SceneSpec {
	return &prefabs.SceneSpec{
		Name:      "test",
		WorldHost: host,
		Physics:   physics.DefaultConfig(),
		Ground: prefabs.GroundSpec{
			Transform: prefabs.TransformSpec{X: 500, Y: 600},
			Width:     1000,
			Height:    40,
		},
		Bodies: []prefabs.BodySpec{
			{Name: "crate", Transform: prefabs.TransformSpec{X: 300, Y: 200}, Width: 40, Height: 40, Count: 3, Spacing: 50},
			{Name: "plank", Transform: prefabs.TransformSpec{X: 600, Y: 300, Rotation: 0.25}, Width: 200, Height: 10, Count: 1, Supplied: true},
			{Name: "mover", Transform: prefabs.TransformSpec{X: 800, Y: 400}, Type: physics.BodyTypeKinematic, Width: 100, Height: 20, Count: 1},
		},
	}
}

func bodiesNamed(l *Level, name string) []*Body {
	var out []*Body
	for _, b := range l.Bodies {
		if b.Entity.Name() == name {
			out = append(out, b)
		}
	}
	return out
}

func TestBuildEmbeddedScene(t *testing.T) {
	spec, err := prefabs.LoadSceneSpec(prefabs.DefaultScene)
	require.NoError(t, err)

	lvl := Build(spec, nil)
	defer lvl.Close()

	assert.Equal(t, len(lvl.Bodies), lvl.World.Bodies())
	assert.Len(t, lvl.Scene.Entities(), len(lvl.Bodies))
	for _, b := range lvl.Bodies {
		assert.NotNil(t, b.Sync.Body(), b.Entity.Name())
	}
}

func TestBuildWorldHost(t *testing.T) {
	tests := []struct {
		host     prefabs.WorldHost
		source   ecs.WorldSource
		entities int
	}{
		{prefabs.WorldHostScene, ecs.WorldSourceScene, 6},
		{prefabs.WorldHostComponent, ecs.WorldSourceComponent, 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.host), func(t *testing.T) {
			lvl := Build(testSpec(tt.host), nil)
			defer lvl.Close()

			w, src := lvl.Scene.LookupPhysicsWorld()
			assert.Equal(t, tt.source, src)
			assert.Same(t, lvl.World, w)
			assert.Len(t, lvl.Scene.Entities(), tt.entities)
			assert.Equal(t, 6, lvl.World.Bodies())
		})
	}
}

func TestBuildPlacesBodies(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	ground := bodiesNamed(lvl, "ground")
	require.Len(t, ground, 1)
	assert.Equal(t, physics.BodyTypeStatic, ground[0].Sync.Body().BodyType())
	assert.InDelta(t, 500, ground[0].Entity.Transform().Position().X, 1e-9)
	assert.InDelta(t, 600, ground[0].Entity.Transform().Position().Y, 1e-9)

	crates := bodiesNamed(lvl, "crate")
	require.Len(t, crates, 3)
	for i, c := range crates {
		want := cp.Vector{X: 300, Y: 200 - float64(i)*50}
		assert.Equal(t, want, c.Entity.Transform().Position())
		assert.InDelta(t, common.ToSim(want).Y, c.Sync.Body().Position().Y, 1e-9)
	}

	plank := bodiesNamed(lvl, "plank")
	require.Len(t, plank, 1)
	assert.InDelta(t, 600, plank[0].Entity.Transform().Position().X, 1e-9)
	assert.InDelta(t, 300, plank[0].Entity.Transform().Position().Y, 1e-9)
	assert.InDelta(t, 0.25, plank[0].Entity.Transform().Rotation(), 1e-9)

	mover := bodiesNamed(lvl, "mover")
	require.Len(t, mover, 1)
	assert.Equal(t, physics.BodyTypeKinematic, mover[0].Sync.Body().BodyType())
}

func TestBodiesFallUnderGravity(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostComponent), nil)
	defer lvl.Close()

	crate := bodiesNamed(lvl, "crate")[2]
	start := crate.Entity.Transform().Position()
	for i := 0; i < 20; i++ {
		lvl.Scene.Update(step)
	}
	assert.Greater(t, crate.Entity.Transform().Position().Y, start.Y)
	assert.InDelta(t, crate.Entity.Transform().Position().Y, common.ToDisplay(crate.Sync.Body().Position()).Y, 1e-9)
}

func TestBodyContains(t *testing.T) {
	scene := ecs.NewScene(nil)
	e := scene.CreateEntity("box")
	e.Transform().SetPosition(cp.Vector{X: 100, Y: 100})
	box := &Body{Entity: e, Shape: Shape{Width: 100, Height: 20}}

	assert.True(t, box.Contains(cp.Vector{X: 140, Y: 105}))
	assert.False(t, box.Contains(cp.Vector{X: 100, Y: 140}))

	e.Transform().SetRotation(math.Pi / 2)
	assert.False(t, box.Contains(cp.Vector{X: 140, Y: 105}))
	assert.True(t, box.Contains(cp.Vector{X: 105, Y: 140}))

	ball := &Body{Entity: e, Shape: Shape{Radius: 10}}
	assert.True(t, ball.Contains(cp.Vector{X: 106, Y: 106}))
	assert.False(t, ball.Contains(cp.Vector{X: 110, Y: 110}))

	var nilBody *Body
	assert.False(t, nilBody.Contains(cp.Vector{}))
}

func TestBodyAtSkipsStatic(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	_, ok := lvl.BodyAt(cp.Vector{X: 500, Y: 600})
	assert.False(t, ok)

	b, ok := lvl.BodyAt(cp.Vector{X: 300, Y: 150})
	require.True(t, ok)
	assert.Equal(t, "crate", b.Entity.Name())
	assert.Equal(t, cp.Vector{X: 300, Y: 150}, b.Entity.Transform().Position())
}

func TestDragMovesBodyThroughTransform(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	grabAt := cp.Vector{X: 305, Y: 200}
	require.True(t, lvl.Drag.Begin(grabAt))
	held, ok := lvl.Drag.Held()
	require.True(t, ok)
	assert.Equal(t, physics.BodyTypeKinematic, held.Sync.Body().BodyType())

	lvl.Drag.Move(cp.Vector{X: 405, Y: 250})
	lvl.Scene.Update(step)

	want := cp.Vector{X: 400, Y: 250}
	assert.Equal(t, want, held.Entity.Transform().Position())
	got := held.Sync.Body().Position()
	assert.InDelta(t, common.ToSim(want).X, got.X, 1e-9)
	assert.InDelta(t, common.ToSim(want).Y, got.Y, 1e-9)

	lvl.Drag.End()
	assert.Equal(t, physics.BodyTypeDynamic, held.Sync.Body().BodyType())
	_, ok = lvl.Drag.Held()
	assert.False(t, ok)
}

func TestDragMissesEmptySpace(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	assert.False(t, lvl.Drag.Begin(cp.Vector{X: 10, Y: 10}))
	lvl.Drag.Move(cp.Vector{X: 20, Y: 20})
	lvl.Drag.End()
}

func TestDragForgetsDestroyedEntity(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	require.True(t, lvl.Drag.Begin(cp.Vector{X: 300, Y: 200}))
	held, _ := lvl.Drag.Held()
	lvl.Scene.DestroyEntity(held.Entity)
	lvl.Drag.Move(cp.Vector{X: 0, Y: 0})
	lvl.Scene.Update(step)

	_, ok := lvl.Drag.Held()
	assert.False(t, ok)
}

func TestDragForgetsDetachedBody(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	require.True(t, lvl.Drag.Begin(cp.Vector{X: 300, Y: 200}))
	held, _ := lvl.Drag.Held()
	require.True(t, held.Entity.RemoveComponent(held.Sync))
	lvl.Drag.Move(cp.Vector{X: 0, Y: 0})
	lvl.Scene.Update(step)

	_, ok := lvl.Drag.Held()
	assert.False(t, ok)
	assert.True(t, lvl.Scene.IsAlive(held.Entity.ID()))
}

func TestOscillateMovesKinematicBodies(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	defer lvl.Close()

	mover := bodiesNamed(lvl, "mover")[0]
	for i := 0; i < 15; i++ {
		lvl.Scene.Update(step)
	}

	pos := mover.Entity.Transform().Position()
	assert.NotEqual(t, 800.0, pos.X)
	assert.InDelta(t, 400, pos.Y, 1e-9)
	assert.InDelta(t, common.ToSim(pos).X, mover.Sync.Body().Position().X, 1e-9)
}

func TestCloseReleasesBodies(t *testing.T) {
	lvl := Build(testSpec(prefabs.WorldHostScene), nil)
	lvl.Close()

	assert.Equal(t, 0, lvl.World.Bodies())
	assert.Empty(t, lvl.Scene.Entities())
	for _, b := range lvl.Bodies {
		assert.Nil(t, b.Sync.Body())
	}
}
