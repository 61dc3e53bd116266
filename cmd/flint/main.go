/*
 * main.go, part of flint.
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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/flint/config"
	"github.com/rmera/flint/pipeline"
)

var verb int

// If level is larger or equal, prints the d arguments to stderr
// otherwise, does nothing.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

// If level is larger or equal, prints the d arguments to stdout
// otherwise, does nothing.
func PrintV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Println(d...)
	}
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"c": "checkpoint",
	"o": "output",
	"n": "number",
	"d": "device",
	"v": "verbose",
	"w": "workers",
}

func main() {
	flag.String("c", "", "PocketGen checkpoint (.pt) file")
	flag.String("o", "./output", "Folder where the runs are written")
	flag.Int("n", 10, "Number of mutants to generate")
	flag.String("d", "cuda:0", "Device for the model, e.g. cpu or cuda:0")
	flag.Int("v", 1, "Level of verbosity: 0 quiet, 1 necessary information, 2 debug")
	flag.Int("w", 1, "Number of docking calculations run in parallel")
	conffile := flag.String("config", "", "Configuration file. By default, flint.yaml is looked for in the current directory")
	resultsonly := flag.Bool("results-only", false, "Only score the runs in the output folder that have no summary")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags] receptor.pdb ligand.sdf\n  %s: -results-only [flags]\n\nFlags:\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	//only the flags actually given override the configuration
	overrides := make(map[string]any)
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.(flag.Getter).Get()
		}
	})
	conf, err := config.Load(*conffile, overrides)
	if err != nil {
		log.Fatal(err)
	}
	verb = conf.Verbose
	if conf.File() != "" {
		LogV(2, "Using configuration file", conf.File())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	O := &pipeline.Options{
		Output:    conf.Output,
		Number:    conf.Number,
		Verbose:   conf.Verbose,
		Workers:   conf.Workers,
		PocketGen: conf.PocketGenOptions(),
		Dock:      conf.DockOptions(),
		Plot:      conf.Report.Plot,
		Archive:   conf.Report.Archive,
		Settings:  conf.Settings(),
	}

	if *resultsonly {
		M := pipeline.NewResultsOnly(O)
		if err := M.Results(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		log.Fatal("flint requires 2 arguments, the receptor (PDB) and ligand (SDF) files")
	}
	if conf.Checkpoint == "" {
		log.Fatal("No PocketGen checkpoint given. Use the -c flag or the checkpoint key of the configuration")
	}
	M, err := pipeline.New(conf.Checkpoint, O)
	if err != nil {
		log.Fatal(err)
	}
	if err := M.Input(args[0], args[1]); err != nil {
		log.Fatal(err)
	}
	R, err := M.Generate(ctx)
	if err != nil {
		log.Fatal(err)
	}
	PrintV(2, "Mutants written to", R.Dir)
	if err := M.Results(ctx); err != nil {
		log.Fatal(err)
	}
	if S, err := R.Summary(); err == nil {
		if best := S.Best(); best != nil {
			PrintV(1, fmt.Sprintf("Best entry of run #%d: %s, dG = %.2f kcal/mol, Kd = %.3g M, %d mutations", R.N, best.ID, best.DeltaG, best.Kd, best.Mutations))
		}
	} else {
		LogV(1, "Could not read the summary:", err)
	}
}
