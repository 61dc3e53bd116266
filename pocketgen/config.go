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

package pocketgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelConfig holds the parts of the PocketGen configuration file that
// Flint uses. The model section is passed untouched to the worker.
type ModelConfig struct {
	Model map[string]any `yaml:"model"`
	Train struct {
		Seed       int `yaml:"seed"`
		NumWorkers int `yaml:"num_workers"`
		BatchSize  int `yaml:"batch_size"`
	} `yaml:"train"`
}

// ReadModelConfig reads a PocketGen YAML configuration file.
func ReadModelConfig(name string) (*ModelConfig, error) {
	errid := "ReadModelConfig"
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	C := new(ModelConfig)
	if err := yaml.Unmarshal(b, C); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, name, err)
	}
	if len(C.Model) == 0 {
		return nil, fmt.Errorf("%s: %s has no model section", errid, name)
	}
	return C, nil
}
