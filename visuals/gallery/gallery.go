// Package gallery holds the ordered list of works shown on the orbit
// gallery, their orbit slots and their panel textures.
package gallery

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyManifest = errors.New("gallery: manifest has no items")
	ErrDuplicateID   = errors.New("gallery: duplicate item id")
	ErrMissingID     = errors.New("gallery: item without id")
)

//go:embed items.yaml
var defaultManifest []byte

// Item is one work. Restricted items are never navigable: their Link is
// cleared on load.
type Item struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
	Year        string   `yaml:"year"`
	Link        string   `yaml:"link"`
	Restricted  bool     `yaml:"restricted"`
	Award       string   `yaml:"award"`
}

// Badge splits the award line into a label and its event text. The label
// is "TROPHY" for a first place and "AWARD" otherwise.
func (it Item) Badge() (label, text string, ok bool) {
	if strings.TrimSpace(it.Award) == "" {
		return "", "", false
	}
	label = "AWARD"
	if strings.Contains(it.Award, "1st") {
		label = "TROPHY"
	}
	text = it.Award
	if _, after, found := strings.Cut(it.Award, " - "); found {
		text = after
	}
	return label, strings.TrimSpace(text), true
}

type manifest struct {
	Items []Item `yaml:"items"`
}

// Parse decodes and validates a YAML manifest.
func Parse(b []byte) ([]Item, error) {
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return validate(m.Items)
}

// Load reads a manifest from r.
func Load(r io.Reader) ([]Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return Parse(b)
}

// LoadFile reads a manifest from a file.
func LoadFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	defer f.Close()
	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Default returns the built-in list.
func Default() []Item {
	items, err := Parse(defaultManifest)
	if err != nil {
		panic(err)
	}
	return items
}

func validate(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, ErrEmptyManifest
	}
	seen := make(map[string]int, len(items))
	out := make([]Item, len(items))
	for i, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrMissingID)
		}
		if j, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("items %d and %d share %q: %w", j, i, it.ID, ErrDuplicateID)
		}
		seen[it.ID] = i
		if it.Restricted {
			it.Link = ""
		}
		out[i] = it
	}
	return out, nil
}

// SlotAngle is the orbit angle of slot i of n: 2πi/n.
func SlotAngle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}

// SlotPosition places slot i of n on the equatorial circle of the given
// radius.
func SlotPosition(i, n int, radius float32) mgl32.Vec3 {
	a := SlotAngle(i, n)
	return mgl32.Vec3{
		radius * float32(math.Cos(a)),
		0,
		radius * float32(math.Sin(a)),
	}
}
