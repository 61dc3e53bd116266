/*
 * manifest.go, part of flint.
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

package run

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest records how a run was produced.
type Manifest struct {
	ID       string         `yaml:"id"`
	Created  time.Time      `yaml:"created"`
	Receptor string         `yaml:"receptor"`
	Ligand   string         `yaml:"ligand"`
	Mutants  int            `yaml:"mutants"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// WriteManifest writes M to the run.yaml file of the run.
func (R *Run) WriteManifest(M *Manifest) error {
	errid := "Run/WriteManifest"
	b, err := yaml.Marshal(M)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := os.WriteFile(filepath.Join(R.Dir, ManifestFile), b, 0o644); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Manifest reads the run.yaml file of the run.
func (R *Run) Manifest() (*Manifest, error) {
	errid := "Run/Manifest"
	b, err := os.ReadFile(filepath.Join(R.Dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	M := new(Manifest)
	if err := yaml.Unmarshal(b, M); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return M, nil
}
