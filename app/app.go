package app

import (
	"errors"
	"fmt"

	"orrery/hal"
	"orrery/internal/buildinfo"
	"orrery/visuals/frameloop"
	"orrery/visuals/gallery"
	"orrery/visuals/mount"
	"orrery/visuals/quarkgl"
	"orrery/visuals/tasks/blackhole"
	"orrery/visuals/tasks/galaxy"
	"orrery/visuals/tasks/orbitgallery"
)

var ErrUnknownRoute = errors.New("unknown route")

// route builds the visuals of one page, back to front.
type route func(a *App) []named

type named struct {
	name string
	v    mount.Visual
}

var (
	routes = map[string]route{
		"hero":  heroRoute,
		"works": worksRoute,
	}
	routeOrder = []string{"hero", "works"}
)

func heroRoute(a *App) []named {
	return []named{
		{"blackhole", blackhole.New(blackhole.Options{Workers: a.cfg.Render.Workers, Detail: a.cfg.Render.Detail})},
	}
}

func worksRoute(a *App) []named {
	return []named{
		{"galaxy", galaxy.New(galaxy.Options{Workers: a.cfg.Render.Workers, Detail: a.cfg.Render.Detail})},
		{"orbitgallery", orbitgallery.New(orbitgallery.Options{
			Items:         a.items,
			AssetRoot:     a.cfg.Gallery.AssetRoot,
			TextureWidth:  a.cfg.Gallery.TextureWidth,
			TextureHeight: a.cfg.Gallery.TextureHeight,
			Sphere:        a.cfg.sphereConfig(),
		})},
	}
}

// App owns the frame loop and the mounted route.
type App struct {
	h     hal.HAL
	cfg   Config
	loop  *frameloop.Loop
	items []gallery.Item

	routes  map[string]route
	order   []string
	route   string
	mounted []named

	failures []failure
	bg       quarkgl.Color
}

// New loads the gallery and mounts cfg.Route.
func New(h hal.HAL, cfg Config) (*App, error) {
	items := gallery.Default()
	if cfg.Gallery.Manifest != "" {
		var err error
		items, err = gallery.LoadFile(cfg.Gallery.Manifest)
		if err != nil {
			return nil, err
		}
	}

	a := &App{
		h:      h,
		cfg:    cfg,
		loop:   frameloop.New(),
		items:  items,
		routes: routes,
		order:  routeOrder,
		bg:     quarkgl.RGB(0, 0, 0),
	}
	a.installPanicHandler()
	a.logf("%s", buildinfo.Line())

	if err := a.Switch(cfg.Route); err != nil {
		return nil, err
	}
	return a, nil
}

// NewWithConfig returns the host step function for cfg. A setup error is
// returned from the first step.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	a, err := New(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return a.Step
}

func (a *App) Route() string { return a.route }

// Switch unmounts every visual of the current route, then mounts route.
// A visual that fails to mount is logged and skipped.
func (a *App) Switch(name string) error {
	build, ok := a.routes[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownRoute)
	}
	a.unmountAll()

	host := mount.Host{
		Loop:      a.loop,
		Log:       a.h.Logger(),
		Cursor:    a.h.Cursor(),
		Navigator: a.h.Navigator(),
	}
	for _, n := range build(a) {
		if err := n.v.Mount(host); err != nil {
			a.logf("app: mount %s: %v", n.name, err)
			continue
		}
		a.mounted = append(a.mounted, n)
	}
	a.route = name
	a.failures = a.failures[:0]
	a.h.SetStatus(fmt.Sprintf("%s  [tab] next", name))
	a.logf("app: route %s (%d visuals)", name, len(a.mounted))
	return nil
}

func (a *App) next() string {
	for i, n := range a.order {
		if n == a.route {
			return a.order[(i+1)%len(a.order)]
		}
	}
	return a.order[0]
}

func (a *App) unmountAll() {
	for i := len(a.mounted) - 1; i >= 0; i-- {
		a.mounted[i].v.Unmount()
	}
	a.mounted = a.mounted[:0]
}

// Close unmounts the current route.
func (a *App) Close() {
	a.unmountAll()
}

// Step runs one frame: route keys, clear, visuals, failure notices.
func (a *App) Step() error {
	in := a.h.Input().State()
	if in.KeyPressed(hal.KeyTab) {
		if err := a.Switch(a.next()); err != nil {
			return err
		}
	}

	img := a.h.Surface().Image()
	target := quarkgl.NewRGBATarget(img)
	target.Clear(a.bg)

	a.loop.Step(a.h.Clock().Now(), img, in)
	a.drawFailures(target)
	return nil
}

func (a *App) logf(format string, args ...any) {
	if l := a.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
