package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/juice"
	"gopkg.in/yaml.v3"
)

const PlayerFile = "player.yaml"

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

// PlayerSpec is the designer-facing description of the player body.
// Omitted numbers keep the built-in defaults.
type PlayerSpec struct {
	Name       string         `yaml:"name"`
	Controller ControllerSpec `yaml:"controller"`
	Juice      JuiceSpec      `yaml:"juice"`
	Render     RenderSpec     `yaml:"render"`
	// Script is a tengo file under scripts/ handling juice events. Empty
	// means the built-in reactions.
	Script string `yaml:"script,omitempty"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func ParsePlayerSpec(data []byte) (*PlayerSpec, error) {
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player spec: %w", err)
	}
	return &spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ControllerSpec struct {
	Size               *VecSpec `yaml:"size,omitempty"`
	Offset             *VecSpec `yaml:"offset,omitempty"`
	DetectorCount      *int     `yaml:"detector_count,omitempty"`
	DetectionRayLength *float64 `yaml:"detection_ray_length,omitempty"`
	RayBuffer          *float64 `yaml:"ray_buffer,omitempty"`

	Acceleration   *float64 `yaml:"acceleration,omitempty"`
	MoveClamp      *float64 `yaml:"move_clamp,omitempty"`
	DeAcceleration *float64 `yaml:"de_acceleration,omitempty"`
	ApexBonus      *float64 `yaml:"apex_bonus,omitempty"`

	FallClamp    *float64 `yaml:"fall_clamp,omitempty"`
	MinFallSpeed *float64 `yaml:"min_fall_speed,omitempty"`
	MaxFallSpeed *float64 `yaml:"max_fall_speed,omitempty"`

	JumpHeight                  *float64 `yaml:"jump_height,omitempty"`
	JumpApexThreshold           *float64 `yaml:"jump_apex_threshold,omitempty"`
	CoyoteTimeThreshold         *float64 `yaml:"coyote_time_threshold,omitempty"`
	JumpBuffer                  *float64 `yaml:"jump_buffer,omitempty"`
	JumpEndEarlyGravityModifier *float64 `yaml:"jump_end_early_gravity_modifier,omitempty"`

	FreeColliderIterations *int     `yaml:"free_collider_iterations,omitempty"`
	ActivationDelay        *float64 `yaml:"activation_delay,omitempty"`
}

// Tuning applies c on top of controller.DefaultTuning. The result is
// not validated; controller.New and SetTuning do that.
func (c ControllerSpec) Tuning() controller.Tuning {
	t := controller.DefaultTuning()
	if c.Size != nil {
		t.Size = common.V(c.Size.X, c.Size.Y)
	}
	if c.Offset != nil {
		t.Offset = common.V(c.Offset.X, c.Offset.Y)
	}
	if c.DetectorCount != nil {
		t.DetectorCount = *c.DetectorCount
	}
	if c.FreeColliderIterations != nil {
		t.FreeColliderIterations = *c.FreeColliderIterations
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{c.DetectionRayLength, &t.DetectionRayLength},
		{c.RayBuffer, &t.RayBuffer},
		{c.Acceleration, &t.Acceleration},
		{c.MoveClamp, &t.MoveClamp},
		{c.DeAcceleration, &t.DeAcceleration},
		{c.ApexBonus, &t.ApexBonus},
		{c.FallClamp, &t.FallClamp},
		{c.MinFallSpeed, &t.MinFallSpeed},
		{c.MaxFallSpeed, &t.MaxFallSpeed},
		{c.JumpHeight, &t.JumpHeight},
		{c.JumpApexThreshold, &t.JumpApexThreshold},
		{c.CoyoteTimeThreshold, &t.CoyoteTimeThreshold},
		{c.JumpBuffer, &t.JumpBuffer},
		{c.JumpEndEarlyGravityModifier, &t.JumpEndEarlyGravityModifier},
		{c.ActivationDelay, &t.ActivationDelay},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return t
}

// ControllerSpecFromTuning is the inverse of Tuning with every field set.
func ControllerSpecFromTuning(t controller.Tuning) ControllerSpec {
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }
	return ControllerSpec{
		Size:               &VecSpec{X: t.Size.X, Y: t.Size.Y},
		Offset:             &VecSpec{X: t.Offset.X, Y: t.Offset.Y},
		DetectorCount:      i(t.DetectorCount),
		DetectionRayLength: f(t.DetectionRayLength),
		RayBuffer:          f(t.RayBuffer),

		Acceleration:   f(t.Acceleration),
		MoveClamp:      f(t.MoveClamp),
		DeAcceleration: f(t.DeAcceleration),
		ApexBonus:      f(t.ApexBonus),

		FallClamp:    f(t.FallClamp),
		MinFallSpeed: f(t.MinFallSpeed),
		MaxFallSpeed: f(t.MaxFallSpeed),

		JumpHeight:                  f(t.JumpHeight),
		JumpApexThreshold:           f(t.JumpApexThreshold),
		CoyoteTimeThreshold:         f(t.CoyoteTimeThreshold),
		JumpBuffer:                  f(t.JumpBuffer),
		JumpEndEarlyGravityModifier: f(t.JumpEndEarlyGravityModifier),

		FreeColliderIterations: i(t.FreeColliderIterations),
		ActivationDelay:        f(t.ActivationDelay),
	}
}

// MarshalTuning renders t as a controller block that can be pasted into
// player.yaml.
func MarshalTuning(t controller.Tuning) ([]byte, error) {
	out := struct {
		Controller ControllerSpec `yaml:"controller"`
	}{ControllerSpecFromTuning(t)}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	return data, nil
}

type JuiceSpec struct {
	MaxTilt              *float64 `yaml:"max_tilt,omitempty"`
	TiltSpeed            *float64 `yaml:"tilt_speed,omitempty"`
	MaxIdleSpeed         *float64 `yaml:"max_idle_speed,omitempty"`
	MaxParticleFallSpeed *float64 `yaml:"max_particle_fall_speed,omitempty"`
}

func (j JuiceSpec) Config() juice.Config {
	cfg := juice.DefaultConfig()
	if j.MaxTilt != nil {
		cfg.MaxTilt = *j.MaxTilt
	}
	if j.TiltSpeed != nil {
		cfg.TiltSpeed = *j.TiltSpeed
	}
	if j.MaxIdleSpeed != nil {
		cfg.MaxIdleSpeed = common.Clamp(*j.MaxIdleSpeed, 1, 3)
	}
	if j.MaxParticleFallSpeed != nil {
		cfg.MaxParticleFallSpeed = *j.MaxParticleFallSpeed
	}
	return cfg
}

type RenderSpec struct {
	Color         *YAMLColor `yaml:"color"`
	ParticleColor *YAMLColor `yaml:"particle_color"`
}

// BodyColor returns the configured color or fallback.
func (r RenderSpec) BodyColor(fallback color.Color) color.Color {
	if r.Color == nil || r.Color.Color == nil {
		return fallback
	}
	return r.Color.Color
}

func (r RenderSpec) DustColor(fallback color.Color) color.Color {
	if r.ParticleColor == nil || r.ParticleColor.Color == nil {
		return fallback
	}
	return r.ParticleColor.Color
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

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// MarshalYAML writes the color back as #rrggbbaa.
func (c YAMLColor) MarshalYAML() (interface{}, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
