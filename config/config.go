/*
 * config.go, part of flint.
 *
 *
 * Copyright 2024 The Flint authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package config loads the Flint settings from defaults, a YAML file, FLINT_*
// environment variables and explicit overrides, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rmera/flint"
	"github.com/rmera/flint/dock"
	"github.com/rmera/flint/pocketgen"
	"github.com/spf13/viper"
)

// Config contains all the Flint settings.
type Config struct {
	Checkpoint string          `mapstructure:"checkpoint"`
	Output     string          `mapstructure:"output"`
	Number     int             `mapstructure:"number"`
	Device     string          `mapstructure:"device"`
	Verbose    int             `mapstructure:"verbose"`
	Workers    int             `mapstructure:"workers"`
	PocketGen  PocketGenConfig `mapstructure:"pocketgen"`
	Docking    DockingConfig   `mapstructure:"docking"`
	Report     ReportConfig    `mapstructure:"report"`

	file     string
	settings map[string]any
}

type PocketGenConfig struct {
	Python   string  `mapstructure:"python"`
	Script   string  `mapstructure:"script"`
	Config   string  `mapstructure:"config"`
	ESMModel string  `mapstructure:"esm_model"`
	Seed     int     `mapstructure:"seed"`
	Cutoff   float64 `mapstructure:"cutoff"`
}

type DockingConfig struct {
	Vina           string  `mapstructure:"vina"`
	Obabel         string  `mapstructure:"obabel"`
	Exhaustiveness int     `mapstructure:"exhaustiveness"`
	NumModes       int     `mapstructure:"num_modes"`
	EnergyRange    float64 `mapstructure:"energy_range"`
	Padding        float64 `mapstructure:"padding"`
	CPU            int     `mapstructure:"cpu"`
	Seed           int     `mapstructure:"seed"`
	WorkDir        string  `mapstructure:"workdir"`
}

type ReportConfig struct {
	Plot    bool `mapstructure:"plot"`
	Archive bool `mapstructure:"archive"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("checkpoint", "")
	v.SetDefault("output", "./output")
	v.SetDefault("number", 10)
	v.SetDefault("device", pocketgen.DefaultDevice)
	v.SetDefault("verbose", 1)
	v.SetDefault("workers", 1)

	v.SetDefault("pocketgen.python", "python3")
	v.SetDefault("pocketgen.script", pocketgen.DefaultScript)
	v.SetDefault("pocketgen.config", pocketgen.DefaultConfig)
	v.SetDefault("pocketgen.esm_model", pocketgen.DefaultESMModel)
	v.SetDefault("pocketgen.seed", pocketgen.DefaultSeed)
	v.SetDefault("pocketgen.cutoff", flint.DefaultPocketCutoff)

	v.SetDefault("docking.vina", "vina")
	v.SetDefault("docking.obabel", "obabel")
	v.SetDefault("docking.exhaustiveness", 8)
	v.SetDefault("docking.num_modes", 9)
	v.SetDefault("docking.energy_range", 3.0)
	v.SetDefault("docking.padding", flint.DefaultBoxPadding)
	v.SetDefault("docking.cpu", runtime.NumCPU()/2)
	v.SetDefault("docking.seed", 0)
	v.SetDefault("docking.workdir", "")

	v.SetDefault("report.plot", true)
	v.SetDefault("report.archive", false)
}

// Load reads the configuration. If file is empty, a flint.yaml file is looked for in
// the current directory and in the user configuration directory; not finding one is
// not an error. overrides, keyed as in the configuration file (e.g. "docking.cpu"), take
// precedence over everything else.
func Load(file string, overrides map[string]any) (*Config, error) {
	errid := "config/Load"
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("flint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "flint"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}
	C := new(Config)
	if err := v.Unmarshal(C); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	C.file = v.ConfigFileUsed()
	C.settings = v.AllSettings()
	if err := C.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return C, nil
}

// Validate checks the values that have no usable fallback.
func (C *Config) Validate() error {
	switch {
	case C.Number < 1:
		return fmt.Errorf("number of mutants must be at least 1, got %d", C.Number)
	case C.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", C.Workers)
	case C.Verbose < 0 || C.Verbose > 2:
		return fmt.Errorf("verbosity must be 0, 1 or 2, got %d", C.Verbose)
	case C.Output == "":
		return fmt.Errorf("no output directory given")
	}
	return nil
}

// File returns the configuration file read, if any.
func (C *Config) File() string {
	return C.file
}

// Settings returns all the effective settings, as nested maps.
func (C *Config) Settings() map[string]any {
	return C.settings
}

// PocketGenOptions returns the options for the PocketGen driver.
func (C *Config) PocketGenOptions() *pocketgen.Options {
	return &pocketgen.Options{
		Python:   os.ExpandEnv(C.PocketGen.Python),
		Script:   os.ExpandEnv(C.PocketGen.Script),
		Config:   os.ExpandEnv(C.PocketGen.Config),
		ESMModel: C.PocketGen.ESMModel,
		Device:   C.Device,
		Seed:     C.PocketGen.Seed,
		Cutoff:   C.PocketGen.Cutoff,
		Verbose:  C.Verbose,
	}
}

// DockOptions returns the options for the docking calculations.
func (C *Config) DockOptions() *dock.Options {
	return &dock.Options{
		Vina:           os.ExpandEnv(C.Docking.Vina),
		Obabel:         os.ExpandEnv(C.Docking.Obabel),
		Exhaustiveness: C.Docking.Exhaustiveness,
		NumModes:       C.Docking.NumModes,
		EnergyRange:    C.Docking.EnergyRange,
		Padding:        C.Docking.Padding,
		CPU:            C.Docking.CPU,
		Seed:           C.Docking.Seed,
		WorkDir:        C.Docking.WorkDir,
		Verbose:        C.Verbose,
	}
}
