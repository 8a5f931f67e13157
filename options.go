package gocube3d

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

// Option configures Viewer behavior.
type Option func(*config)

type config struct {
	state  cube.Cube
	table  *cube.Table
	speed  float64
	eps    float64
	policy anim.Policy
	render render.Config
	pitch  float64
	yaw    float64
	log    logrus.FieldLogger
}

func defaultConfig() *config {
	return &config{
		state:  cube.New(),
		table:  cube.DefaultTable(),
		speed:  anim.DefaultSpeed,
		eps:    anim.DefaultEpsilon,
		policy: anim.QueueOne,
		render: render.DefaultConfig(),
		pitch:  render.DefaultPitch,
		yaw:    render.DefaultYaw,
	}
}

// WithState starts the viewer from c instead of a solved cube.
func WithState(c cube.Cube) Option {
	return func(cfg *config) {
		cfg.state = c
	}
}

// WithTable uses a loaded permutation table instead of the built-in one.
func WithTable(t *cube.Table) Option {
	return func(cfg *config) {
		cfg.table = t
	}
}

// WithSpeed sets the animation speed in degrees per tick.
func WithSpeed(deg float64) Option {
	return func(cfg *config) {
		cfg.speed = deg
	}
}

// WithEpsilon sets the angle below which a turn commits.
func WithEpsilon(deg float64) Option {
	return func(cfg *config) {
		cfg.eps = deg
	}
}

// WithPolicy sets what happens to a turn requested mid-animation.
// The default queues one turn.
func WithPolicy(p anim.Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

// WithRenderConfig replaces the projection and drawing parameters.
func WithRenderConfig(rc render.Config) Option {
	return func(cfg *config) {
		cfg.render = rc
	}
}

// WithCamera sets the initial camera pitch and yaw in degrees.
func WithCamera(pitch, yaw float64) Option {
	return func(cfg *config) {
		cfg.pitch = pitch
		cfg.yaw = yaw
	}
}

// WithLogger sets the logger. Without it the viewer logs nothing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) {
		cfg.log = l
	}
}
