/*
 * options.go, part of flint.
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

import "github.com/rmera/flint"

// Defaults for the model setup.
const (
	DefaultSeed     = 2089
	DefaultESMModel = "esm2_t33_650M_UR50D"
	DefaultConfig   = "./PocketGen/configs/train_model.yml"
	DefaultScript   = "./scripts/pocketgen_worker.py"
	DefaultDevice   = "cuda:0"
)

// Options contains the parameters for the PocketGen setup.
// Note that the defaults are NOT considered part of the API, so they can always change.
type Options struct {
	Python   string  //path and name of the Python interpreter
	Script   string  //worker script
	Config   string  //PocketGen model configuration (YAML)
	ESMModel string  //protein language model whose alphabet is used
	Device   string  //torch device, e.g. cpu or cuda:0
	Seed     int
	Cutoff   float64 //pocket cutoff, in A
	Verbose  int
}

// DefaultOptions returns Options with their default values.
func DefaultOptions() *Options {
	O := new(Options)
	O.SetDefaults()
	return O
}

// SetDefaults sets the setup parameters to their defaults.
func (O *Options) SetDefaults() {
	O.Python = "python3"
	O.Script = DefaultScript
	O.Config = DefaultConfig
	O.ESMModel = DefaultESMModel
	O.Device = DefaultDevice
	O.Seed = DefaultSeed
	O.Cutoff = flint.DefaultPocketCutoff
}
