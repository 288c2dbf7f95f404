// Package config holds the store's externally tunable knobs: the
// hole-ratio/zombie-ratio thresholds the facade compares its idmgr metrics
// against to decide whether a caller-triggered rebuild is advisable (spec
// §4.1, §4.6). Loading follows wazero's RuntimeConfig convention of an
// immutable value built through clone()-backed With* options, plus an
// optional YAML file for operators who want to tune it without a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kumose/xann/api"
)

// RebuildThresholds are the hole-ratio and zombie-ratio levels past which
// the store's observability surface flags a store as a rebuild candidate.
// The store itself never rebuilds automatically; these are purely
// advisory thresholds surfaced through the store's IsRebuildAdvised.
type RebuildThresholds struct {
	HoleRatio   float64 `yaml:"hole_ratio"`
	ZombieRatio float64 `yaml:"zombie_ratio"`
}

// DefaultRebuildThresholds matches the defaults described in spec §4.1.
func DefaultRebuildThresholds() RebuildThresholds {
	return RebuildThresholds{HoleRatio: 0.3, ZombieRatio: 0.2}
}

func (t RebuildThresholds) clone() RebuildThresholds { return t }

// WithHoleRatio returns a copy of t with HoleRatio set to v.
func (t RebuildThresholds) WithHoleRatio(v float64) RebuildThresholds {
	c := t.clone()
	c.HoleRatio = v
	return c
}

// WithZombieRatio returns a copy of t with ZombieRatio set to v.
func (t RebuildThresholds) WithZombieRatio(v float64) RebuildThresholds {
	c := t.clone()
	c.ZombieRatio = v
	return c
}

// Validate checks that both ratios are within (0, 1]; this mirrors the
// idmgr package's own ratio invariants (spec §4.1, P-style bounds).
func (t RebuildThresholds) Validate() error {
	if t.HoleRatio <= 0 || t.HoleRatio > 1 {
		return api.NewError("Validate", api.KindInvalidArgument, fmt.Sprintf("hole_ratio=%v", t.HoleRatio))
	}
	if t.ZombieRatio <= 0 || t.ZombieRatio > 1 {
		return api.NewError("Validate", api.KindInvalidArgument, fmt.Sprintf("zombie_ratio=%v", t.ZombieRatio))
	}
	return nil
}

// LoadRebuildThresholds reads a YAML file of the form:
//
//	hole_ratio: 0.3
//	zombie_ratio: 0.2
//
// and merges it over DefaultRebuildThresholds, so a file that only sets one
// key leaves the other at its default.
func LoadRebuildThresholds(path string) (RebuildThresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RebuildThresholds{}, api.WrapError("LoadRebuildThresholds", api.KindUnavailable, path, err)
	}

	t := DefaultRebuildThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return RebuildThresholds{}, api.WrapError("LoadRebuildThresholds", api.KindInvalidArgument, path, err)
	}
	if err := t.Validate(); err != nil {
		return RebuildThresholds{}, err
	}
	return t, nil
}
