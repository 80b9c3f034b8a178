package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"orrery/app"
	"orrery/hal"
	"orrery/internal/buildinfo"
)

func main() {
	var (
		hcfg       hal.HeadlessConfig
		configPath string
		route      string
		version    bool
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.StringVar(&configPath, "config", "", "TOML config file.")
	flag.StringVar(&route, "route", "", "Initial route (hero or works).")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Line())
		return
	}

	cfg := app.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(configPath); err != nil {
			fail(err)
		}
	}
	if route != "" {
		cfg.Route = route
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if hcfg.Enabled {
		hcfg.Width, hcfg.Height = cfg.Window.Width/cfg.Window.Scale, cfg.Window.Height/cfg.Window.Scale
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fail(err)
		}
		return
	}

	wcfg := hal.WindowConfig{
		Title:  "orrery",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		TPS:    60,
	}
	if err := hal.RunWindow(wcfg, newApp); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
