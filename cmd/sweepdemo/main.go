package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sweep/config"
	"github.com/milk9111/sweep/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "sweep.yaml", "config file (defaults are used when missing)")
	scriptPath := flag.String("script", "", "tengo response script, overrides the config")
	debug := flag.Bool("debug", true, "draw the partition overlay")
	watch := flag.Bool("watch", true, "reload config and script on change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
		cfg.Response = "script"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(cfg, *configPath, logger, *debug)
	if err != nil {
		logger.Fatal("sweepdemo: init", zap.Error(err))
	}
	if *watch {
		game.Watch(*configPath, cfg.Script)
	}
	defer game.Close()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("sweep")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("sweepdemo: run", zap.Error(err))
	}
}
