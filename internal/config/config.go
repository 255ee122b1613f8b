package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Voxtral    VoxtralConfig    `toml:"voxtral" yaml:"voxtral"`
	Record     RecordConfig     `toml:"record" yaml:"record"`
	Transcribe TranscribeConfig `toml:"transcribe" yaml:"transcribe"`
}

type VoxtralConfig struct {
	Binary string `toml:"binary" yaml:"binary"`
	Model  string `toml:"model" yaml:"model"`
}

// RecordConfig holds the recorder invocation settings. Durations are in
// seconds so they read naturally in config files.
type RecordConfig struct {
	Utility          string  `toml:"utility" yaml:"utility"`
	OutputDir        string  `toml:"output_dir" yaml:"output_dir"`
	SampleRate       int     `toml:"sample_rate" yaml:"sample_rate"`
	Channels         int     `toml:"channels" yaml:"channels"`
	BitDepth         int     `toml:"bit_depth" yaml:"bit_depth"`
	Duration         int     `toml:"duration" yaml:"duration"`
	QuickDuration    int     `toml:"quick_duration" yaml:"quick_duration"`
	LongDuration     int     `toml:"long_duration" yaml:"long_duration"`
	TimeoutGrace     int     `toml:"timeout_grace" yaml:"timeout_grace"`
	SilenceThreshold string  `toml:"silence_threshold" yaml:"silence_threshold"`
	SilenceWindow    float64 `toml:"silence_window" yaml:"silence_window"`
	SilenceStop      float64 `toml:"silence_stop" yaml:"silence_stop"`
	MinBytes         int64   `toml:"min_bytes" yaml:"min_bytes"`
	Keep             int     `toml:"keep" yaml:"keep"`
}

type TranscribeConfig struct {
	Timeout         int `toml:"timeout" yaml:"timeout"`
	RealtimeTimeout int `toml:"realtime_timeout" yaml:"realtime_timeout"`
}

func Default() *Config {
	return &Config{
		Voxtral: VoxtralConfig{
			Binary: "~/.openclaw/workspace/voxtral.c/voxtral",
			Model:  "~/.openclaw/workspace/voxtral.c/voxtral-model",
		},
		Record: RecordConfig{
			Utility:          "rec",
			OutputDir:        "~/.openclaw/workspace/voxtral-recordings",
			SampleRate:       16000,
			Channels:         1,
			BitDepth:         16,
			Duration:         10,
			QuickDuration:    5,
			LongDuration:     20,
			TimeoutGrace:     5,
			SilenceThreshold: "1%",
			SilenceWindow:    0.3,
			SilenceStop:      1.0,
			MinBytes:         1000,
		},
		Transcribe: TranscribeConfig{
			Timeout:         120,
			RealtimeTimeout: 60,
		},
	}
}

// Dir returns the directory holding config.toml and the optional .env file.
func Dir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "voxtral")
}

func Load() (*Config, error) {
	dir := Dir()
	if dir == "" {
		return Default(), nil
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom reads a TOML config, or YAML when the file has a .yaml/.yml
// extension. A missing file yields the defaults. Durations and timeouts
// that would make every run fail immediately are rejected.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	positive := []struct {
		key string
		val int
	}{
		{"record.duration", c.Record.Duration},
		{"record.quick_duration", c.Record.QuickDuration},
		{"record.long_duration", c.Record.LongDuration},
		{"transcribe.timeout", c.Transcribe.Timeout},
		{"transcribe.realtime_timeout", c.Transcribe.RealtimeTimeout},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%s must be greater than 0, got %d", p.key, p.val)
		}
	}
	if c.Record.TimeoutGrace < 0 {
		return fmt.Errorf("record.timeout_grace must not be negative, got %d", c.Record.TimeoutGrace)
	}
	if c.Record.Keep < 0 {
		return fmt.Errorf("record.keep must not be negative, got %d", c.Record.Keep)
	}
	if c.Record.MinBytes < 0 {
		return fmt.Errorf("record.min_bytes must not be negative, got %d", c.Record.MinBytes)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("VOXTRAL_BIN"); v != "" {
		c.Voxtral.Binary = v
	}
	if v := os.Getenv("VOXTRAL_MODEL"); v != "" {
		c.Voxtral.Model = v
	}
	if v := os.Getenv("VOXTRAL_RECORDINGS_DIR"); v != "" {
		c.Record.OutputDir = v
	}
	if v := os.Getenv("VOXTRAL_RECORDER"); v != "" {
		c.Record.Utility = v
	}
}

// ExpandPaths resolves a leading "~/" in every configured path.
func (c *Config) ExpandPaths() {
	c.Voxtral.Binary = expandHome(c.Voxtral.Binary)
	c.Voxtral.Model = expandHome(c.Voxtral.Model)
	c.Record.OutputDir = expandHome(c.Record.OutputDir)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (r RecordConfig) DefaultDuration() time.Duration { return seconds(r.Duration) }
func (r RecordConfig) Quick() time.Duration           { return seconds(r.QuickDuration) }
func (r RecordConfig) Long() time.Duration            { return seconds(r.LongDuration) }
func (r RecordConfig) Grace() time.Duration           { return seconds(r.TimeoutGrace) }

func (t TranscribeConfig) FileTimeout() time.Duration   { return seconds(t.Timeout) }
func (t TranscribeConfig) RealtimeLimit() time.Duration { return seconds(t.RealtimeTimeout) }
