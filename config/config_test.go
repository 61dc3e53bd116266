/*
 * config_test.go, part of flint.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(Te *testing.T) {
	//no flint.yaml in the test directory
	C, err := Load("", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if C.File() != "" {
		Te.Errorf("no configuration file should be used, got %s", C.File())
	}
	if C.Number != 10 || C.Workers != 1 || C.Verbose != 1 || C.Device != "cuda:0" {
		Te.Errorf("unexpected defaults %+v", C)
	}
	if C.PocketGen.Seed != 2089 || C.PocketGen.Cutoff != 3.5 || C.PocketGen.ESMModel != "esm2_t33_650M_UR50D" {
		Te.Errorf("unexpected PocketGen defaults %+v", C.PocketGen)
	}
	if C.Docking.Padding != 5 || C.Docking.NumModes != 9 || !C.Report.Plot {
		Te.Errorf("unexpected docking defaults %+v", C.Docking)
	}
}

func TestLoadPriorities(Te *testing.T) {
	Te.Setenv("FLINT_DOCKING_CPU", "3")
	Te.Setenv("FLINT_DEVICE", "cuda:1")
	C, err := Load("testdata/flint.yaml", map[string]any{"device": "cpu", "number": 7})
	if err != nil {
		Te.Fatal(err)
	}
	if C.Checkpoint != "./checkpoints/pocketgen.pt" || C.Docking.Exhaustiveness != 16 || !C.Report.Archive {
		Te.Errorf("values from the file were not read: %+v", C)
	}
	if C.Docking.CPU != 3 {
		Te.Errorf("the environment should override the file, got cpu=%d", C.Docking.CPU)
	}
	if C.Device != "cpu" || C.Number != 7 {
		Te.Errorf("overrides should take precedence, got %s %d", C.Device, C.Number)
	}
	D := C.DockOptions()
	if D.CPU != 3 || D.Exhaustiveness != 16 || D.Padding != 5 {
		Te.Errorf("wrong docking options %+v", D)
	}
	P := C.PocketGenOptions()
	if P.Device != "cpu" || P.Seed != 2089 {
		Te.Errorf("wrong PocketGen options %+v", P)
	}
	s := C.Settings()
	if s["number"] != 7 {
		Te.Errorf("settings should reflect the overrides, got %v", s["number"])
	}
}

func TestLoadErrors(Te *testing.T) {
	if _, err := Load("testdata/nothere.yaml", nil); err == nil {
		Te.Error("a missing configuration file should give an error")
	}
	if _, err := Load("", map[string]any{"workers": 0}); err == nil {
		Te.Error("0 workers should give an error")
	}
	bad := filepath.Join(Te.TempDir(), "flint.yaml")
	if err := os.WriteFile(bad, []byte("number: [1, 2\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Load(bad, nil); err == nil {
		Te.Error("a malformed file should give an error")
	}
}
