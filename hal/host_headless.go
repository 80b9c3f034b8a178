package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/anthonynsimon/bild/imgio"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Width   int
	Height  int

	// Snapshot, when set, is a PNG path the last frame is written to.
	Snapshot string

	// Script optionally supplies the input state for each tick.
	Script func(tick uint64) InputState
}

// RunHeadless runs the visuals without opening a window. The clock advances
// by exactly 1/Hz per tick, so output is reproducible. Links are logged, not
// opened.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}

	clock := newFixedClock(d)
	h := newHost(cfg.Width, cfg.Height, clock, nil)
	h.nav = newHostNavigator(h.logger, true)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.Script != nil {
				h.in.set(cfg.Script(tick))
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			clock.tick()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeSnapshot(h, cfg.Snapshot)
			}
		}
	}
}

func writeSnapshot(h *hostHAL, path string) error {
	if path == "" {
		return nil
	}
	if err := imgio.Save(path, h.fb.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	h.logger.WriteLineString("snapshot: wrote " + path)
	return nil
}
