// Package config loads riggen settings from an optional YAML or JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/riggen"
	"github.com/aretw0/riggen/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are looked up, in order, when no config path is given.
var DefaultFiles = []string{"riggen.yaml", "riggen.yml", "riggen.json"}

// Config holds every setting the commands accept.
type Config struct {
	Pose      string `yaml:"pose" json:"pose"`
	LeftHand  string `yaml:"hand_left" json:"hand_left"`
	RightHand string `yaml:"hand_right" json:"hand_right"`
	Output    string `yaml:"output" json:"output"`

	Workers   int               `yaml:"workers" json:"workers"`
	Legs      bool              `yaml:"legs" json:"legs"`
	Runtime   string            `yaml:"runtime" json:"runtime"`
	ImageSize *domain.ImageSize `yaml:"image_size,omitempty" json:"image_size,omitempty"`

	RedisURL string `yaml:"redis_url" json:"redis_url"`
	RedisTTL string `yaml:"redis_ttl" json:"redis_ttl"`

	Addr     string `yaml:"addr" json:"addr"`
	Debug    bool   `yaml:"debug" json:"debug"`
	Progress bool   `yaml:"progress" json:"progress"`
}

// Default returns the built-in settings, matching the original pipeline's file names.
func Default() Config {
	job := riggen.DefaultJob()
	return Config{
		Pose:      job.PosePath,
		LeftHand:  job.LeftHandPath,
		RightHand: job.RightHandPath,
		Output:    job.Output,
		Workers:   1,
		Runtime:   string(domain.RuntimeMediapipe),
		Addr:      ":8080",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their default.
// The format is JSON for a .json extension and YAML otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	return cfg, cfg.Validate()
}

// Discover loads the first of DefaultFiles found in dir.
// Without any config file it returns the defaults and an empty path.
func Discover(dir string) (Config, string, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	return Default(), "", nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	switch domain.Runtime(c.Runtime) {
	case domain.RuntimeMediapipe, domain.RuntimeTFJS:
	default:
		errs = append(errs, fmt.Errorf("unknown runtime %q", c.Runtime))
	}
	if c.ImageSize != nil && (c.ImageSize.Width <= 0 || c.ImageSize.Height <= 0) {
		errs = append(errs, fmt.Errorf("image_size must be positive"))
	}
	if _, err := c.TTL(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TTL parses RedisTTL. An empty value means no expiry.
func (c Config) TTL() (time.Duration, error) {
	if c.RedisTTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.RedisTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis_ttl: %w", err)
	}
	return ttl, nil
}

// Job returns the conversion job described by the settings.
func (c Config) Job() riggen.Job {
	return riggen.Job{
		PosePath:      c.Pose,
		LeftHandPath:  c.LeftHand,
		RightHandPath: c.RightHand,
		Output:        c.Output,
	}
}

// PoseOptions returns the pose solve options described by the settings.
func (c Config) PoseOptions() domain.PoseOptions {
	return domain.PoseOptions{
		Runtime:    domain.Runtime(c.Runtime),
		EnableLegs: c.Legs,
		ImageSize:  c.ImageSize,
	}
}
