package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/bodysync/logger"
	"github.com/milk9111/bodysync/physics"
	"gopkg.in/yaml.v3"
)

// WorldHost picks who owns the physics world of a scene.
type WorldHost string

const (
	WorldHostScene     WorldHost = "scene"
	WorldHostComponent WorldHost = "component"
)

// SceneSpec describes a demo scene. Positions and sizes are in display
// units (pixels).
type SceneSpec struct {
	Name      string         `yaml:"name"`
	WorldHost WorldHost      `yaml:"world_host"`
	Physics   physics.Config `yaml:"physics"`
	Logging   logger.Config  `yaml:"logging"`
	Ground    GroundSpec     `yaml:"ground"`
	Bodies    []BodySpec     `yaml:"bodies"`
}

// GroundSpec is a static box created up front and handed to its entity.
type GroundSpec struct {
	Transform TransformSpec `yaml:"transform"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Color     *YAMLColor    `yaml:"color"`
}

// BodySpec describes one or more bodies. Count > 1 stacks copies Spacing
// pixels apart along y.
type BodySpec struct {
	Name      string           `yaml:"name"`
	Transform TransformSpec    `yaml:"transform"`
	Type      physics.BodyType `yaml:"type"`
	Width     float64          `yaml:"width"`
	Height    float64          `yaml:"height"`
	Radius    float64          `yaml:"radius"`
	Color     *YAMLColor       `yaml:"color"`
	Supplied  bool             `yaml:"supplied"`
	Count     int              `yaml:"count"`
	Spacing   float64          `yaml:"spacing"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// LoadSpec reads and decodes a yaml spec.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads and validates a scene spec, filling defaults.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.normalize(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) normalize() error {
	switch s.WorldHost {
	case "":
		s.WorldHost = WorldHostScene
	case WorldHostScene, WorldHostComponent:
	default:
		return fmt.Errorf("unknown world_host %q", s.WorldHost)
	}

	for i := range s.Bodies {
		b := &s.Bodies[i]
		if b.Name == "" {
			b.Name = fmt.Sprintf("body%d", i)
		}
		if b.Radius <= 0 && (b.Width <= 0 || b.Height <= 0) {
			return fmt.Errorf("body %q needs a radius or a width and height", b.Name)
		}
		if b.Count <= 0 {
			b.Count = 1
		}
		if b.Spacing == 0 {
			b.Spacing = b.Height
			if b.Radius > 0 {
				b.Spacing = b.Radius * 2
			}
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the color, or def when unset.
func (c *YAMLColor) ColorOr(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
