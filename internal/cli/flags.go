package cli

import (
	"github.com/aretw0/riggen/internal/config"
	"github.com/spf13/pflag"
)

// ResolveConfig builds the effective settings: explicitly set flags win over the
// config file, which wins over the defaults. The file is --config when given,
// else the first riggen.yaml/riggen.yml/riggen.json found in the working directory.
func ResolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path, _ := fs.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return cfg, err
	}

	applyFlags(fs, &cfg)
	return cfg, cfg.Validate()
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	strs := map[string]*string{
		"pose":      &cfg.Pose,
		"left":      &cfg.LeftHand,
		"right":     &cfg.RightHand,
		"out":       &cfg.Output,
		"runtime":   &cfg.Runtime,
		"redis-url": &cfg.RedisURL,
		"redis-ttl": &cfg.RedisTTL,
		"addr":      &cfg.Addr,
	}
	for name, dst := range strs {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}

	bools := map[string]*bool{
		"legs":     &cfg.Legs,
		"debug":    &cfg.Debug,
		"progress": &cfg.Progress,
	}
	for name, dst := range bools {
		if fs.Changed(name) {
			*dst, _ = fs.GetBool(name)
		}
	}

	if fs.Changed("workers") {
		cfg.Workers, _ = fs.GetInt("workers")
	}
}

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default: riggen.yaml, riggen.yml or riggen.json if present)")
	fs.Bool("debug", false, "Enable debug logging to stderr")
}

// AddInputFlags registers the three landmark input paths.
func AddInputFlags(fs *pflag.FlagSet) {
	def := config.Default()
	fs.String("pose", def.Pose, "Pose landmark sequence (JSON)")
	fs.String("left", def.LeftHand, "Left hand landmark sequence (JSON)")
	fs.String("right", def.RightHand, "Right hand landmark sequence (JSON)")
}

// AddSolveFlags registers the solver settings.
func AddSolveFlags(fs *pflag.FlagSet) {
	def := config.Default()
	fs.Int("workers", def.Workers, "Frames solved in parallel")
	fs.Bool("legs", def.Legs, "Solve leg rotations")
	fs.String("runtime", def.Runtime, "Landmark runtime: mediapipe or tfjs")
}

// AddStoreFlags registers the Redis result store settings.
func AddStoreFlags(fs *pflag.FlagSet) {
	fs.String("redis-url", "", "Store results in Redis (e.g. redis://localhost:6379/0)")
	fs.String("redis-ttl", "", "Expiry of results stored in Redis (e.g. 24h)")
}
