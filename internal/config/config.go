// Package config reads a project's folidity.yaml, mirroring the way the
// teacher's module tooling reads CUE module metadata (cue.mod/module.cue)
// as a small, optional, defaulted YAML-ish document.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults match spec §1 Configuration: a 10 second solver timeout and a
// build/ output directory when no folidity.yaml is present.
const (
	DefaultSolverTimeoutMS = 10_000
	DefaultBuildDir        = "build"
)

// Config is the parsed shape of folidity.yaml.
type Config struct {
	// SolverTimeoutMS overrides internal/smt's per-block check timeout.
	SolverTimeoutMS int `yaml:"solver_timeout_ms"`
	// BuildDir is where `compile` writes approval.teal and clear.teal.
	BuildDir string `yaml:"build_dir"`
	// Warnings lists warning categories to enable; the names are not
	// validated, neither here nor by internal/cmdline.
	Warnings []string `yaml:"warnings"`
}

// Default returns the configuration used when a project has no
// folidity.yaml.
func Default() Config {
	return Config{
		SolverTimeoutMS: DefaultSolverTimeoutMS,
		BuildDir:        DefaultBuildDir,
	}
}

// FileName is the conventional config file name searched for in a project
// directory.
const FileName = "folidity.yaml"

// Load reads FileName from dir, applying Default() for any field the file
// omits. A missing file is not an error: Load returns Default().
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading %s", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}

	if parsed.SolverTimeoutMS > 0 {
		cfg.SolverTimeoutMS = parsed.SolverTimeoutMS
	}
	if parsed.BuildDir != "" {
		cfg.BuildDir = parsed.BuildDir
	}
	if parsed.Warnings != nil {
		cfg.Warnings = parsed.Warnings
	}
	return cfg, nil
}

// Write serializes cfg to FileName inside dir, used by the `new` command to
// scaffold a project.
func Write(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
