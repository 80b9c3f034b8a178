package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"orrery/visuals/sphere"
)

// Config is the TOML-file configuration. Zero sections keep their defaults.
type Config struct {
	Route   string        `toml:"route"`
	Window  WindowConfig  `toml:"window"`
	Render  RenderConfig  `toml:"render"`
	Gallery GalleryConfig `toml:"gallery"`
	Sphere  SphereConfig  `toml:"sphere"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Scale  int `toml:"scale"`
}

type RenderConfig struct {
	// Workers bounds shading goroutines; 0 uses GOMAXPROCS.
	Workers int `toml:"workers"`
	// Detail is the shader pixel step.
	Detail int `toml:"detail"`
}

type GalleryConfig struct {
	// Manifest is an optional YAML file replacing the built-in list.
	Manifest      string `toml:"manifest"`
	AssetRoot     string `toml:"asset_root"`
	TextureWidth  int    `toml:"texture_width"`
	TextureHeight int    `toml:"texture_height"`
}

type SphereConfig struct {
	Particles    int     `toml:"particles"`
	Radius       float32 `toml:"radius"`
	Jitter       float32 `toml:"jitter"`
	RotationStep float32 `toml:"rotation_step"`
}

var ErrInvalidConfig = errors.New("invalid config")

func DefaultConfig() Config {
	sc := sphere.DefaultConfig()
	return Config{
		Route:  "hero",
		Window: WindowConfig{Width: 960, Height: 600, Scale: 2},
		Render: RenderConfig{Workers: 0, Detail: 1},
		Gallery: GalleryConfig{
			AssetRoot:     "public",
			TextureWidth:  160,
			TextureHeight: 100,
		},
		Sphere: SphereConfig{
			Particles:    sc.Particles,
			Radius:       sc.Radius,
			Jitter:       sc.Jitter,
			RotationStep: sc.RotationStep,
		},
	}
}

// LoadConfig decodes path over the defaults. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidConfig)
	case c.Window.Scale <= 0:
		return fmt.Errorf("window scale %d: %w", c.Window.Scale, ErrInvalidConfig)
	case c.Render.Workers < 0 || c.Render.Detail < 0:
		return fmt.Errorf("render workers/detail must not be negative: %w", ErrInvalidConfig)
	case c.Sphere.Particles < 0 || c.Sphere.Radius <= 0 || c.Sphere.Jitter < 0:
		return fmt.Errorf("sphere particles=%d radius=%v jitter=%v: %w",
			c.Sphere.Particles, c.Sphere.Radius, c.Sphere.Jitter, ErrInvalidConfig)
	case c.Sphere.Jitter >= c.Sphere.Radius:
		return fmt.Errorf("sphere jitter %v must be below radius %v: %w", c.Sphere.Jitter, c.Sphere.Radius, ErrInvalidConfig)
	case c.Sphere.Radius+c.Sphere.Jitter >= sphere.DefaultConfig().CameraRadius:
		return fmt.Errorf("sphere radius %v puts the camera inside the sphere: %w", c.Sphere.Radius, ErrInvalidConfig)
	}
	if _, ok := routes[c.Route]; !ok {
		return fmt.Errorf("route %q: %w", c.Route, ErrUnknownRoute)
	}
	return nil
}

func (c Config) sphereConfig() sphere.Config {
	sc := sphere.DefaultConfig()
	sc.Particles = c.Sphere.Particles
	sc.Radius = c.Sphere.Radius
	sc.Jitter = c.Sphere.Jitter
	if c.Sphere.RotationStep != 0 {
		sc.RotationStep = c.Sphere.RotationStep
	}
	return sc
}
