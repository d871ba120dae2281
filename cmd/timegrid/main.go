package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"timegrid/camera"
	"timegrid/config"
	"timegrid/host"
	"timegrid/surface"
	"timegrid/timeaxis"
	"timegrid/timeline"
)

func main() {
	var (
		cfgPath  string
		headless bool
		hz       int
		ticks    uint64
	)
	flag.StringVar(&cfgPath, "config", "timegrid.yaml", "Path to the YAML config.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	if err := run(cfgPath, headless, hz, ticks); err != nil {
		if err == context.Canceled {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string, headless bool, hz int, ticks uint64) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return err
	}
	start, err := cfg.Start()
	if err != nil {
		return err
	}

	ctrl, err := timeline.New(timeline.Options{
		Surface:    surface.NewMemory(cfg.Width, cfg.Height),
		Background: bg,
		StartDate:  start,
		Axis: timeaxis.Config{
			UnitsPerDay:   cfg.UnitsPerDay,
			DayThreshold:  cfg.DayThreshold,
			WeekThreshold: cfg.WeekThreshold,
		},
		ZoomMin: cfg.ZoomMin,
		ZoomMax: cfg.ZoomMax,
		Logger:  &log,
	})
	if err != nil {
		return err
	}
	if cfg.Touch {
		ctrl.EnableTouchSupport()
	}
	ctrl.SetContentFunc(demoBars(ctrl, start))

	log.Info().
		Str("start", timeaxis.Midnight(start).Format("2006-01-02")).
		Int("width", cfg.Width).Int("height", cfg.Height).
		Bool("touch", cfg.Touch).
		Msg("timeline ready")

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return host.RunHeadless(ctx, ctrl, host.HeadlessConfig{Hz: hz, Ticks: ticks})
	}
	return host.Run(ctrl, host.WindowConfig{Title: "timegrid"})
}

// demoBars draws a handful of task bars at fixed date offsets, exercising
// date->world placement in the transformed content space.
func demoBars(ctrl *timeline.Controller, start time.Time) timeline.ContentFunc {
	type bar struct {
		startDay int
		days     int
		row      int
		col      color.RGBA
	}
	bars := []bar{
		{startDay: 0, days: 3, row: 0, col: color.RGBA{R: 0x4C, G: 0x8B, B: 0xF5, A: 0xFF}},
		{startDay: 2, days: 5, row: 1, col: color.RGBA{R: 0x55, G: 0xB5, B: 0x6A, A: 0xFF}},
		{startDay: 6, days: 2, row: 2, col: color.RGBA{R: 0xE8, G: 0xA0, B: 0x3C, A: 0xFF}},
		{startDay: 9, days: 7, row: 3, col: color.RGBA{R: 0xB0, G: 0x6C, B: 0xD8, A: 0xFF}},
	}
	base := timeaxis.Midnight(start)

	const (
		rowHeight = 36.0
		barHeight = 22.0
		firstRowY = -70.0
	)

	return func(cv *surface.Canvas, vp camera.Viewport) {
		for _, b := range bars {
			x0 := ctrl.DateToWorld(base.AddDate(0, 0, b.startDay))
			x1 := ctrl.DateToWorld(base.AddDate(0, 0, b.startDay+b.days))
			y := firstRowY + float64(b.row)*rowHeight
			cv.FillRect(x0+2, y, x1-x0-4, barHeight, b.col)
		}
	}
}
