package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/common"
	"github.com/milk9111/bodysync/level"
	"github.com/milk9111/bodysync/physics/debugdraw"
	"github.com/milk9111/bodysync/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.NRGBA{R: 0x1e, G: 0x22, B: 0x2a, A: 0xff}
	heldColor       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type Game struct {
	sceneName string
	spec      *prefabs.SceneSpec
	level     *level.Level
	log       *zap.Logger
	watcher   *prefabs.Watcher
	specTime  time.Time

	frames  int
	debug   bool
	paused  bool
	pauseUI *ebitenui.UI

	pixel *ebiten.Image
	face  ebtext.Face
}

func NewGame(sceneName string, spec *prefabs.SceneSpec, debug bool, log *zap.Logger) *Game {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &Game{
		sceneName: sceneName,
		spec:      spec,
		log:       log.Named("game"),
		debug:     debug,
		pixel:     pixel,
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
	}
	g.specTime, _ = prefabs.ModTime(sceneName)
	g.level = level.Build(spec, log)
	g.pauseUI = NewPauseUI(g)
	return g
}

// Watch reloads the scene when its spec changes under dir.
func (g *Game) Watch(dir string) error {
	w, err := prefabs.NewWatcher(dir)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.level.Close()
}

// Reset rebuilds the level from the current spec.
func (g *Game) Reset() {
	g.level.Close()
	g.level = level.Build(g.spec, g.log)
	g.paused = false
}

func (g *Game) reload() {
	spec, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		g.log.Warn("scene reload failed", zap.String("scene", g.sceneName), zap.Error(err))
		return
	}
	g.spec = spec
	g.specTime, _ = prefabs.ModTime(g.sceneName)
	g.Reset()
	g.log.Info("scene reloaded", zap.String("scene", g.sceneName))
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if filepath.Base(name) != filepath.Base(g.sceneName) {
				continue
			}
			// editors often write a file more than once per save
			if mt, ok := prefabs.ModTime(g.sceneName); ok && !mt.After(g.specTime) {
				continue
			}
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		g.level.Drag.End()
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	cx, cy := ebiten.CursorPosition()
	cursor := cp.Vector{X: float64(cx), Y: float64(cy)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.level.Drag.Begin(cursor)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.level.Drag.End()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.level.Drag.Move(cursor)
	}

	g.level.Scene.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	held, _ := g.level.Drag.Held()
	for _, b := range g.level.Bodies {
		if b.Sync.Body() == nil {
			continue
		}
		clr := b.Color
		if b == held {
			clr = heldColor
		}
		g.drawBody(screen, b, clr)
	}

	if g.debug {
		debugdraw.Draw(screen, g.level.World, common.SimToDisplay)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	hud := fmt.Sprintf("%s  bodies: %d  [drag] move  [R] reset  [D] debug  [Esc] pause", g.level.Name, g.level.World.Bodies())
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, float64(common.BaseHeight-20))
	ebtext.Draw(screen, hud, g.face, op)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawBody(screen *ebiten.Image, b *level.Body, clr color.Color) {
	t := b.Entity.Transform()
	pos := t.Position()

	if b.Shape.Radius > 0 {
		vector.FillCircle(screen, float32(pos.X), float32(pos.Y), float32(b.Shape.Radius), clr, true)
		edge := pos.Add(cp.ForAngle(t.Rotation()).Mult(b.Shape.Radius))
		vector.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(edge.X), float32(edge.Y), 2, backgroundColor, true)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(b.Shape.Width, b.Shape.Height)
	op.GeoM.Rotate(t.Rotation())
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(g.pixel, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
