package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bodysync/common"
	"github.com/milk9111/bodysync/logger"
	"github.com/milk9111/bodysync/prefabs"
	"go.uber.org/zap"
)

func main() {
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene spec in prefabs/ (embedded copy used when missing on disk)")
	debug := flag.Bool("debug", false, "draw physics shapes")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "also write JSON logs to this rotated file")
	watch := flag.Bool("watch", false, "reload the scene when its spec changes on disk")
	flag.Parse()

	spec, err := prefabs.LoadSceneSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}

	logCfg := spec.Logging
	if *logLevel != "" {
		logCfg.Level = *logLevel
	}
	if *logFile != "" {
		logCfg.File = *logFile
	}
	zl := logger.New(logCfg)
	defer func() { _ = zl.Sync() }()

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("bodysync: " + spec.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(*sceneName, spec, *debug, zl)
	defer game.Close()

	if *watch {
		if err := game.Watch(prefabs.Dir); err != nil {
			zl.Warn("prefab watcher disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		zl.Fatal("game exited", zap.Error(err))
	}
}
