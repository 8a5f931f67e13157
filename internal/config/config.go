// Package config loads gocube3d settings from config.yaml with viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/render"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	KeyTurnSpeed       = "turn_speed"
	KeyFPS             = "fps"
	KeyQueuePolicy     = "queue_policy"
	KeyEpsilon         = "epsilon"
	KeyFocalLength     = "focal_length"
	KeyDepthOffset     = "depth_offset"
	KeyScale           = "scale"
	KeyStickerScale    = "sticker_scale"
	KeyStickerOffset   = "sticker_offset"
	KeyBackfaceCulling = "backface_culling"
	KeyCameraStep      = "camera_step"
	KeyInitialPitch    = "initial_pitch"
	KeyInitialYaw      = "initial_yaw"
	KeyTableFile       = "table_file"
	KeyDBPath          = "db_path"
	KeyLogLevel        = "log_level"
	KeyPalette         = "palette"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# gocube3d configuration

# Animation speed in degrees per tick, and ticks per second.
turn_speed: 9
fps: 30

# What to do with a turn requested mid-animation: queue or reject.
queue_policy: queue

# Projection
focal_length: 500
depth_offset: 300
scale: 100
sticker_scale: 0.9
backface_culling: true

# Camera
camera_step: 2
initial_pitch: 30
initial_yaw: -45

# Optional move table (see "gocube3d table export").
# table_file:

# Database path (default: <config dir>/gocube3d.db)
# db_path:

log_level: info

# Sticker color overrides.
# palette:
#   white: "#f0f0f0"
#   body: "#000000"
`

// Config is the resolved configuration.
type Config struct {
	Dir string

	TurnSpeed   float64
	FPS         int
	QueuePolicy anim.Policy
	Epsilon     float64

	FocalLength     float64
	DepthOffset     float64
	Scale           float64
	StickerScale    float64
	StickerOffset   float64
	BackfaceCulling bool

	CameraStep   float64
	InitialPitch float64
	InitialYaw   float64

	TableFile string
	DBPath    string
	LogLevel  logrus.Level
	Palette   map[string]string
}

// DefaultDir returns ~/.gocube3d.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gocube3d"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTurnSpeed, anim.DefaultSpeed)
	v.SetDefault(KeyFPS, 30)
	v.SetDefault(KeyQueuePolicy, anim.QueueOne.String())
	v.SetDefault(KeyEpsilon, anim.DefaultEpsilon)
	v.SetDefault(KeyFocalLength, 500.0)
	v.SetDefault(KeyDepthOffset, 300.0)
	v.SetDefault(KeyScale, 100.0)
	v.SetDefault(KeyStickerScale, 0.9)
	v.SetDefault(KeyStickerOffset, 0.002)
	v.SetDefault(KeyBackfaceCulling, true)
	v.SetDefault(KeyCameraStep, 2.0)
	v.SetDefault(KeyInitialPitch, render.DefaultPitch)
	v.SetDefault(KeyInitialYaw, render.DefaultYaw)
	v.SetDefault(KeyTableFile, "")
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads config.yaml from dir. It creates dir and a default config.yaml
// on first run. A missing config.yaml is not an error.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v, dir)
}

// FromViper resolves and validates the settings held by v.
func FromViper(v *viper.Viper, dir string) (*Config, error) {
	policy, err := anim.ParsePolicy(v.GetString(KeyQueuePolicy))
	if err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}

	cfg := &Config{
		Dir:             dir,
		TurnSpeed:       v.GetFloat64(KeyTurnSpeed),
		FPS:             v.GetInt(KeyFPS),
		QueuePolicy:     policy,
		Epsilon:         v.GetFloat64(KeyEpsilon),
		FocalLength:     v.GetFloat64(KeyFocalLength),
		DepthOffset:     v.GetFloat64(KeyDepthOffset),
		Scale:           v.GetFloat64(KeyScale),
		StickerScale:    v.GetFloat64(KeyStickerScale),
		StickerOffset:   v.GetFloat64(KeyStickerOffset),
		BackfaceCulling: v.GetBool(KeyBackfaceCulling),
		CameraStep:      v.GetFloat64(KeyCameraStep),
		InitialPitch:    v.GetFloat64(KeyInitialPitch),
		InitialYaw:      v.GetFloat64(KeyInitialYaw),
		TableFile:       v.GetString(KeyTableFile),
		DBPath:          v.GetString(KeyDBPath),
		LogLevel:        level,
		Palette:         v.GetStringMapString(KeyPalette),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = storage.DefaultDBPath(dir)
	}

	switch {
	case cfg.TurnSpeed <= 0:
		return nil, fmt.Errorf("config: %s must be positive", KeyTurnSpeed)
	case cfg.FPS <= 0:
		return nil, fmt.Errorf("config: %s must be positive", KeyFPS)
	case cfg.Epsilon <= 0:
		return nil, fmt.Errorf("config: %s must be positive", KeyEpsilon)
	}
	return cfg, nil
}

func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// RenderConfig builds the renderer settings, applying palette overrides.
func (c *Config) RenderConfig() (render.Config, error) {
	rc := render.DefaultConfig()
	rc.FocalLength = c.FocalLength
	rc.DepthOffset = c.DepthOffset
	rc.Scale = c.Scale
	rc.StickerScale = c.StickerScale
	rc.StickerOffset = c.StickerOffset
	rc.BackfaceCulling = c.BackfaceCulling

	if len(c.Palette) > 0 {
		p, err := rc.Palette.WithOverrides(c.Palette)
		if err != nil {
			return rc, err
		}
		rc.Palette = p
	}
	return rc, nil
}

// Table loads table_file, or returns the built-in table when it is unset.
func (c *Config) Table() (*cube.Table, error) {
	if c.TableFile == "" {
		return cube.DefaultTable(), nil
	}
	return cube.LoadTableFile(c.TableFile)
}

// ViewerOptions returns the viewer options these settings describe.
func (c *Config) ViewerOptions(log logrus.FieldLogger) ([]gocube3d.Option, error) {
	rc, err := c.RenderConfig()
	if err != nil {
		return nil, err
	}
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	return []gocube3d.Option{
		gocube3d.WithSpeed(c.TurnSpeed),
		gocube3d.WithEpsilon(c.Epsilon),
		gocube3d.WithPolicy(c.QueuePolicy),
		gocube3d.WithRenderConfig(rc),
		gocube3d.WithCamera(c.InitialPitch, c.InitialYaw),
		gocube3d.WithTable(table),
		gocube3d.WithLogger(log),
	}, nil
}

// LogPath returns the log file used while the terminal UI owns the screen.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, "gocube3d.log")
}
