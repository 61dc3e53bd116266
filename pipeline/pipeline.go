/*
 * pipeline.go, part of flint.
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

// Package pipeline puts together the generation of mutants with PocketGen and their
// evaluation by docking.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rmera/flint"
	"github.com/rmera/flint/clash"
	"github.com/rmera/flint/dock"
	"github.com/rmera/flint/pocketgen"
	"github.com/rmera/flint/run"
	"golang.org/x/sync/errgroup"
)

// Options contains the parameters for a Model.
type Options struct {
	Output    string //folder where runs are stored
	Number    int    //mutants per run
	Verbose   int    //0 quiet, 1 necessary information, 2 debug
	Workers   int    //parallel docking calculations
	PocketGen *pocketgen.Options
	Dock      *dock.Options
	Plot      bool           //draw summary.png for each scored run
	Archive   bool           //write a .tar.zst archive of each scored run
	Settings  map[string]any //recorded in the run manifest
}

// DefaultOptions returns Options with their default values.
func DefaultOptions() *Options {
	return &Options{
		Output:    "./output",
		Number:    10,
		Verbose:   1,
		Workers:   1,
		PocketGen: pocketgen.DefaultOptions(),
		Dock:      dock.DefaultOptions(),
		Plot:      true,
	}
}

// Model generates mutant receptors for a ligand and scores them.
type Model struct {
	O         *Options
	generator *pocketgen.Generator
	loader    []*pocketgen.Batch
	sources   [2]string
	// score is replaced in tests.
	score func(ctx context.Context, receptor, ligand string, O *dock.Options) (float64, float64, error)
}

// printv prints the message if the verbosity level of the model is at least level.
func (M *Model) printv(level int, format string, args ...any) {
	if M.O.Verbose >= level {
		fmt.Printf(format+"\n", args...)
	}
}

// New sets up the model from the PocketGen checkpoint. If O is nil, the defaults are used.
func New(checkpoint string, O *Options) (*Model, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if O.PocketGen == nil {
		O.PocketGen = pocketgen.DefaultOptions()
	}
	if O.Dock == nil {
		O.Dock = dock.DefaultOptions()
	}
	if O.Workers < 1 {
		O.Workers = 1
	}
	M := &Model{O: O, score: dock.Score}
	M.printv(1, "Flint setup started, please wait.")
	M.printv(2, "Now building PocketGen model :")
	g, err := pocketgen.New(checkpoint, O.PocketGen)
	if err != nil {
		return nil, fmt.Errorf("Model/New: %w", err)
	}
	M.generator = g
	M.printv(2, "\tcheckpoint found, model configuration read.")
	M.printv(2, "\tembedding model: %s, device: %s, seed: %d.", O.PocketGen.ESMModel, O.PocketGen.Device, O.PocketGen.Seed)
	M.printv(2, "End of setup, model can now be used.\n")
	return M, nil
}

// NewResultsOnly returns a Model that can only score existing runs.
func NewResultsOnly(O *Options) *Model {
	if O == nil {
		O = DefaultOptions()
	}
	if O.Dock == nil {
		O.Dock = dock.DefaultOptions()
	}
	if O.Workers < 1 {
		O.Workers = 1
	}
	return &Model{O: O, score: dock.Score}
}

// Input reads the receptor and ligand, computes their interaction features and builds
// the batches for the generation.
func (M *Model) Input(receptor, ligand string) error {
	errid := "Model/Input"
	if M.generator == nil {
		return fmt.Errorf("%s: the model was not set up for generation", errid)
	}
	M.printv(2, "Now parsing data from receptor and ligand :")
	features, err := pocketgen.Interaction(receptor, ligand, M.O.PocketGen.Cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	M.printv(2, "\tsuccessfully parsed interaction features (%d pocket residues).\n", len(features.Pocket))
	M.printv(2, "Now building the data loader :")
	M.loader = pocketgen.Loader(features, M.O.Number)
	M.sources = [2]string{receptor, ligand}
	M.printv(2, "\tdata loader built correctly.")
	return nil
}

// Generate creates a new run and fills it with the mutants generated from the input,
// and copies of the input files. If anything fails, the run directory is removed.
func (M *Model) Generate(ctx context.Context) (*run.Run, error) {
	errid := "Model/Generate"
	if len(M.loader) == 0 {
		return nil, fmt.Errorf("%s: no input loaded", errid)
	}
	M.printv(1, "Now generating new mutant protein receptors :")
	R, err := run.Create(M.O.Output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if err := M.fill(ctx, R); err != nil {
		if rerr := R.Remove(); rerr != nil {
			log.Printf("%s: could not remove the failed run %s: %v", errid, R, rerr)
		}
		return nil, fmt.Errorf("%s: %s: %w", errid, R, err)
	}
	return R, nil
}

func (M *Model) fill(ctx context.Context, R *run.Run) error {
	done := func(int) { M.printv(1, "\tinference done on a batch.") }
	if err := M.generator.Generate(ctx, M.loader, R.Dir, done); err != nil {
		return err
	}
	if err := R.StoreOriginals(M.sources[0], M.sources[1]); err != nil {
		return err
	}
	id := uuid.NewString()
	if err := R.WriteInputs(M.sources[0], M.sources[1], id); err != nil {
		return err
	}
	man := &run.Manifest{
		ID:       id,
		Created:  time.Now().UTC(),
		Receptor: M.sources[0],
		Ligand:   M.sources[1],
		Mutants:  len(M.loader),
		Settings: M.O.Settings,
	}
	return R.WriteManifest(man)
}

// Results scores every run in the output folder that has no summary yet.
func (M *Model) Results(ctx context.Context) error {
	errid := "Model/Results"
	M.printv(1, "Now writing output files :")
	runs, err := run.List(M.O.Output)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	for _, R := range runs {
		if R.HasSummary() {
			continue
		}
		if err := R.Check(); err != nil {
			log.Printf("%s: skipping %s: %v", errid, R, err)
			continue
		}
		S, err := M.Score(ctx, R)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		if err := R.WriteSummary(S); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		M.report(R, S)
		M.printv(1, "You can find the run #%d summary in your output folder.", R.N)
	}
	return nil
}

// report writes the optional plot and archive of a scored run. Failures are only logged.
func (M *Model) report(R *run.Run, S *run.Summary) {
	if M.O.Plot {
		if err := R.Plot(S); err != nil {
			log.Printf("Model/Results: %s: could not plot the summary: %v", R, err)
		}
	}
	if M.O.Archive {
		if err := R.Archive(R.ArchivePath()); err != nil {
			log.Printf("Model/Results: %s: could not archive the run: %v", R, err)
		}
	}
}

type scored struct {
	dg, kd    float64
	mutations int
}

// Score docks the original complex and every mutant of R, and returns the summary.
// Up to O.Workers dockings run at the same time. Rows are in batch order regardless.
func (M *Model) Score(ctx context.Context, R *run.Run) (*run.Summary, error) {
	errid := "Model/Score"
	n, err := R.NMutants()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	origrec, origlig := R.OriginalPaths()
	results := make([]scored, n+1) //0 is the original
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(M.O.Workers)
	g.Go(func() error {
		dg, kd, err := M.score(gctx, origrec, origlig, M.O.Dock)
		if err != nil && gctx.Err() != nil {
			return gctx.Err()
		}
		results[0] = scored{dg: dg, kd: kd}
		return nil
	})
	for b := 0; b < n; b++ {
		b := b
		g.Go(func() error {
			rec, lig := R.MutantPaths(b)
			dg, kd, err := M.score(gctx, rec, lig, M.O.Dock)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			m, err := flint.MutationsFiles(origrec, rec)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", R, run.MutantName(b), err)
			}
			if c, err := clash.Files(rec, lig, 0); err == nil && len(c) > 0 {
				M.printv(2, "\t%s: %d receptor-ligand contacts under %.1f A, the shortest is %.2f A.", run.MutantName(b), len(c), clash.DefaultMinDist, c[0].Dist)
			}
			results[b+1] = scored{dg: dg, kd: kd, mutations: m}
			M.printv(2, "\twrote one new entry in the summary file.")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	S := run.NewSummary(n)
	S.Add(run.OriginalID, results[0].dg, results[0].kd, 0)
	for b := 0; b < n; b++ {
		r := results[b+1]
		S.Add(run.MutantName(b), r.dg, r.kd, r.mutations)
	}
	return S, nil
}
