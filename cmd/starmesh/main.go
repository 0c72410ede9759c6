//go:build ebiten

package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"starmesh/internal/app"
	"starmesh/internal/scene"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := initLogger(cfg.Debug)

	set, err := app.LoadSettings(cfg.Settings)
	if err != nil {
		log.WithError(err).Warn("settings unreadable, using defaults")
	}
	if cfg.Width > 0 {
		set.Window.Width = cfg.Width
	}
	if cfg.Height > 0 {
		set.Window.Height = cfg.Height
	}
	if cfg.Interval > 0 {
		set.Regen.IntervalMS = int(cfg.Interval / time.Millisecond)
	}

	sc, err := scene.LoadFile(cfg.Scene)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Fatal("scene unreadable")
		}
		sc = scene.New()
		log.WithField("path", cfg.Scene).Info("starting a new scene")
	}

	game := app.New(sc, cfg.Scene, set, log)

	ebiten.SetWindowTitle("starmesh")
	ebiten.SetWindowSize(set.Window.Width, set.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("game loop failed")
	}

	if set.Autosave {
		if err := sc.SaveFile(cfg.Scene); err != nil {
			log.WithError(err).Error("autosave failed")
			os.Exit(1)
		}
		log.WithField("path", cfg.Scene).Info("scene saved")
	}
}

func initLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
