package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dshills/glide/internal/config/loader"
	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/scroll"
	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/easing"
	"github.com/dshills/glide/internal/snap"
)

// LuaPrefix marks an easing setting as an inline Lua curve.
const LuaPrefix = "lua:"

// Config is the full set of glide settings.
type Config struct {
	Scroll ScrollConfig
	Snap   SnapConfig
	Log    LogConfig

	// Path is the file the settings were read from, if any.
	Path string

	scripts []*easing.Script
}

// ScrollConfig maps onto scroll.Options.
type ScrollConfig struct {
	SmoothWheel            bool
	SyncTouch              bool
	SyncTouchLerp          float64
	TouchInertiaMultiplier float64

	Duration time.Duration
	Easing   string
	Lerp     float64

	// SpringFrequency enables spring animations when positive.
	SpringFrequency float64
	SpringDamping   float64

	Infinite           bool
	Orientation        string
	GestureOrientation string

	TouchMultiplier float64
	WheelMultiplier float64
	LineHeight      float64

	AutoResize     bool
	ResizeDebounce time.Duration
}

// SnapConfig maps onto snap.Options. Zero Lerp, Duration and an empty
// Easing defer to the scroll settings.
type SnapConfig struct {
	Enabled           bool
	Type              string
	Lerp              float64
	Duration          time.Duration
	Easing            string
	VelocityThreshold float64
	Debounce          time.Duration
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	Level string
	// File receives log output. Empty discards it.
	File string
}

// Default returns the built-in settings.
func Default() *Config {
	so := scroll.DefaultOptions()
	sn := snap.DefaultOptions()
	return &Config{
		Scroll: ScrollConfig{
			SmoothWheel:            so.SmoothWheel,
			SyncTouch:              so.SyncTouch,
			SyncTouchLerp:          so.SyncTouchLerp,
			TouchInertiaMultiplier: so.TouchInertiaMultiplier,
			Easing:                 "out-expo",
			Lerp:                   so.Lerp,
			SpringDamping:          1,
			Orientation:            so.Orientation.String(),
			GestureOrientation:     so.GestureOrientation.String(),
			TouchMultiplier:        so.TouchMultiplier,
			WheelMultiplier:        so.WheelMultiplier,
			LineHeight:             so.LineHeight,
			AutoResize:             so.AutoResize,
			ResizeDebounce:         so.ResizeDebounce,
		},
		Snap: SnapConfig{
			Enabled:           true,
			Type:              sn.Type.String(),
			VelocityThreshold: sn.VelocityThreshold,
			Debounce:          sn.Debounce,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFS reads the config file from fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path or a missing file leaves the
// defaults in place.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	var merged map[string]any
	if path != "" {
		file, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}
	if o.envPrefix != "" {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	c, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// FromMap applies a nested settings map over the defaults and validates
// the result.
func FromMap(m map[string]any) (*Config, error) {
	c := Default()
	if err := c.apply(m); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) apply(m map[string]any) error {
	var errs []error
	for _, section := range sortedKeys(m) {
		values, ok := m[section].(map[string]any)
		if !ok {
			errs = append(errs, invalid(section, m[section], ErrInvalidType))
			continue
		}
		for _, key := range sortedKeys(values) {
			path := section + "." + key
			f, ok := fieldIndex[path]
			if !ok {
				errs = append(errs, invalid(path, nil, ErrUnknownSetting))
				continue
			}
			if err := f.set(c, values[key]); err != nil {
				errs = append(errs, invalid(path, values[key], err))
			}
		}
	}
	return errors.Join(errs...)
}

// Validate checks every setting and reports all failures.
func (c *Config) Validate() error {
	var errs []error
	check := func(path string, value any, err error) {
		if err != nil {
			errs = append(errs, invalid(path, value, err))
		}
	}

	s := c.Scroll
	check("scroll.lerp", s.Lerp, checkLerp(s.Lerp))
	check("scroll.syncTouchLerp", s.SyncTouchLerp, checkLerp(s.SyncTouchLerp))
	check("scroll.duration", s.Duration, checkDuration(s.Duration))
	check("scroll.resizeDebounce", s.ResizeDebounce, checkDuration(s.ResizeDebounce))
	check("scroll.easing", s.Easing, checkEasing(s.Easing, false))
	check("scroll.touchMultiplier", s.TouchMultiplier, checkPositive(s.TouchMultiplier))
	check("scroll.wheelMultiplier", s.WheelMultiplier, checkPositive(s.WheelMultiplier))
	check("scroll.lineHeight", s.LineHeight, checkPositive(s.LineHeight))
	check("scroll.touchInertiaMultiplier", s.TouchInertiaMultiplier, checkPositive(s.TouchInertiaMultiplier))
	check("scroll.orientation", s.Orientation, checkOrientation(s.Orientation, false))
	check("scroll.gestureOrientation", s.GestureOrientation, checkOrientation(s.GestureOrientation, true))
	if s.SpringFrequency < 0 || (s.SpringFrequency > 0 && s.SpringDamping <= 0) {
		check("scroll.springFrequency", s.SpringFrequency, ErrInvalidSpring)
	}

	sn := c.Snap
	if _, ok := snap.ParseType(sn.Type); !ok {
		check("snap.type", sn.Type, ErrInvalidSnapType)
	}
	if sn.Lerp != 0 {
		check("snap.lerp", sn.Lerp, checkLerp(sn.Lerp))
	}
	check("snap.duration", sn.Duration, checkDuration(sn.Duration))
	check("snap.debounce", sn.Debounce, checkDuration(sn.Debounce))
	check("snap.easing", sn.Easing, checkEasing(sn.Easing, true))
	if sn.VelocityThreshold < 0 {
		check("snap.velocityThreshold", sn.VelocityThreshold, ErrInvalidMultiplier)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		check("log.level", c.Log.Level, ErrInvalidLevel)
	}

	return errors.Join(errs...)
}

// ScrollOptions converts the scroll settings. Lua curves stay compiled
// until Close.
func (c *Config) ScrollOptions() (scroll.Options, error) {
	s := c.Scroll
	curve, err := c.curve(s.Easing)
	if err != nil {
		return scroll.Options{}, invalid("scroll.easing", s.Easing, err)
	}
	orientation, _ := scroll.ParseOrientation(s.Orientation)
	gestureOrientation, _ := scroll.ParseOrientation(s.GestureOrientation)

	opts := scroll.Options{
		SmoothWheel:            s.SmoothWheel,
		SyncTouch:              s.SyncTouch,
		SyncTouchLerp:          s.SyncTouchLerp,
		TouchInertiaMultiplier: s.TouchInertiaMultiplier,
		Duration:               s.Duration,
		Easing:                 curve,
		Lerp:                   s.Lerp,
		Infinite:               s.Infinite,
		Orientation:            orientation,
		GestureOrientation:     gestureOrientation,
		TouchMultiplier:        s.TouchMultiplier,
		WheelMultiplier:        s.WheelMultiplier,
		LineHeight:             s.LineHeight,
		AutoResize:             s.AutoResize,
		ResizeDebounce:         s.ResizeDebounce,
	}
	if s.SpringFrequency > 0 {
		opts.Spring = &animate.Spring{Frequency: s.SpringFrequency, Damping: s.SpringDamping}
	}
	return opts, nil
}

// SnapOptions converts the snap settings. Callbacks are left unset.
func (c *Config) SnapOptions() (snap.Options, error) {
	sn := c.Snap
	opts := snap.DefaultOptions()
	opts.Type, _ = snap.ParseType(sn.Type)
	opts.Lerp = sn.Lerp
	opts.Duration = sn.Duration
	opts.VelocityThreshold = sn.VelocityThreshold
	opts.Debounce = sn.Debounce
	if sn.Easing != "" {
		curve, err := c.curve(sn.Easing)
		if err != nil {
			return snap.Options{}, invalid("snap.easing", sn.Easing, err)
		}
		opts.Easing = curve
	}
	return opts, nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// Close releases compiled Lua curves. Options converted earlier fall back
// to linear progress for those curves.
func (c *Config) Close() {
	for _, s := range c.scripts {
		s.Close()
	}
	c.scripts = nil
}

func (c *Config) curve(name string) (easing.Func, error) {
	src, ok := strings.CutPrefix(name, LuaPrefix)
	if !ok {
		return easing.Lookup(name)
	}
	script, err := easing.FromLua(strings.TrimSpace(src))
	if err != nil {
		return nil, err
	}
	c.scripts = append(c.scripts, script)
	return script.Func(), nil
}

func checkLerp(v float64) error {
	if v <= 0 || v > 1 {
		return ErrInvalidLerp
	}
	return nil
}

func checkDuration(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDuration
	}
	return nil
}

func checkPositive(v float64) error {
	if v <= 0 {
		return ErrInvalidMultiplier
	}
	return nil
}

func checkOrientation(s string, allowBoth bool) error {
	o, ok := scroll.ParseOrientation(s)
	if !ok || (o == scroll.Both && !allowBoth) {
		return ErrInvalidOrientation
	}
	return nil
}

func checkEasing(name string, optional bool) error {
	if name == "" && optional {
		return nil
	}
	src, ok := strings.CutPrefix(name, LuaPrefix)
	if !ok {
		if _, err := easing.Lookup(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEasing, err)
		}
		return nil
	}
	script, err := easing.FromLua(strings.TrimSpace(src))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEasing, err)
	}
	script.Close()
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
