/*
 * pocketgen.go, part of flint.
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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rmera/flint/run"
)

// ErrNoOutput is returned when the model finished without writing a mutant.
var ErrNoOutput = errors.New("no mutant written")

// Generator is a PocketGen model ready to generate mutants.
type Generator struct {
	checkpoint string
	config     *ModelConfig
	O          *Options
}

// New validates the checkpoint, reads the model configuration and returns a
// Generator. If O is nil, the defaults are used.
func New(checkpoint string, O *Options) (*Generator, error) {
	errid := "New"
	if O == nil {
		O = DefaultOptions()
	}
	fi, err := os.Stat(checkpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: checkpoint: %w", errid, err)
	}
	if fi.IsDir() || fi.Size() == 0 {
		return nil, fmt.Errorf("%s: checkpoint %s is not a valid file", errid, checkpoint)
	}
	conf, err := ReadModelConfig(O.Config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if O.Seed == 0 {
		O.Seed = DefaultSeed
	}
	if O.ESMModel == "" {
		O.ESMModel = DefaultESMModel
	}
	abs, err := filepath.Abs(checkpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return &Generator{checkpoint: abs, config: conf, O: O}, nil
}

// Checkpoint returns the absolute path of the model checkpoint.
func (G *Generator) Checkpoint() string {
	return G.checkpoint
}

// Config returns the model configuration.
func (G *Generator) Config() *ModelConfig {
	return G.config
}

// request is what the worker reads from its standard input.
type request struct {
	Checkpoint string         `json:"checkpoint"`
	Config     string         `json:"config"`
	Model      map[string]any `json:"model"`
	Device     string         `json:"device"`
	Seed       int            `json:"seed"`
	ESMModel   string         `json:"esm_model"`
	NumWorkers int            `json:"num_workers"`
	Features   *Features      `json:"features"`
	Batches    []batchTarget  `json:"batches"`
}

type batchTarget struct {
	Batch    int    `json:"batch"`
	Target   string `json:"target"`
	Receptor string `json:"receptor"`
	Ligand   string `json:"ligand"`
}

// Event is one line of the worker output.
type Event struct {
	Type  string `json:"type"` //batch, log or error
	Batch int    `json:"batch"`
	Msg   string `json:"msg"`
}

func (G *Generator) request(loader []*Batch, rundir string) (*request, error) {
	if len(loader) == 0 {
		return nil, fmt.Errorf("empty loader")
	}
	conf, err := filepath.Abs(G.O.Config)
	if err != nil {
		return nil, err
	}
	R := &request{
		Checkpoint: G.checkpoint,
		Config:     conf,
		Model:      G.config.Model,
		Device:     G.O.Device,
		Seed:       G.O.Seed,
		ESMModel:   G.O.ESMModel,
		NumWorkers: G.config.Train.NumWorkers,
		Features:   loader[0].Features,
		Batches:    make([]batchTarget, 0, len(loader)),
	}
	for _, b := range loader {
		if b.Features != R.Features {
			return nil, fmt.Errorf("batch %d has different features", b.Index)
		}
		rec, lig := run.MutantFiles(rundir, b.Index)
		R.Batches = append(R.Batches, batchTarget{
			Batch:    b.Index,
			Target:   run.MutantDir(rundir, b.Index),
			Receptor: rec,
			Ligand:   lig,
		})
	}
	return R, nil
}

// Generate runs the model on every batch of loader, writing each mutant to its
// directory inside rundir. done, if not nil, is called after each batch finishes.
// Generate returns when the worker exits, and checks that every mutant was written.
func (G *Generator) Generate(ctx context.Context, loader []*Batch, rundir string, done func(batch int)) error {
	errid := "Generator/Generate"
	rundir, err := filepath.Abs(rundir)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	req, err := G.request(loader, rundir)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	for _, b := range req.Batches {
		if err := os.MkdirAll(b.Target, 0o755); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	in, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	cmd := exec.CommandContext(ctx, G.O.Python, G.O.Script)
	cmd.Stdin = bytes.NewReader(in)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", errid, pkgerrors.Wrapf(err, "%s %s", G.O.Python, G.O.Script))
	}
	workerr := G.events(stdout, done)
	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if workerr != nil {
			msg = workerr.Error()
		}
		return fmt.Errorf("%s: %w", errid, pkgerrors.Wrap(err, "PocketGen worker: "+msg))
	}
	if workerr != nil {
		return fmt.Errorf("%s: %w", errid, workerr)
	}
	for _, b := range req.Batches {
		for _, f := range []string{b.Receptor, b.Ligand} {
			if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
				return fmt.Errorf("%s: batch %d: %s: %w", errid, b.Batch, f, ErrNoOutput)
			}
		}
	}
	return nil
}

// events reads the worker output until it is closed. It returns the first
// error reported by the worker, or the error that stopped the reading.
func (G *Generator) events(stdout io.Reader, done func(int)) error {
	var workerr error
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			//stray output from the libraries used by the worker
			if G.O.Verbose >= 2 {
				log.Printf("PocketGen: %s", line)
			}
			continue
		}
		switch e.Type {
		case "batch":
			if done != nil {
				done(e.Batch)
			}
		case "error":
			if workerr == nil {
				workerr = fmt.Errorf("PocketGen worker: %s", e.Msg)
			}
		default:
			if G.O.Verbose >= 2 {
				log.Printf("PocketGen: %s", e.Msg)
			}
		}
	}
	if err := sc.Err(); err != nil {
		if workerr == nil {
			workerr = fmt.Errorf("reading the worker output: %w", err)
		}
		//the worker must not block on a full pipe
		io.Copy(io.Discard, stdout)
	}
	return workerr
}
