/*
 * pocketgen_test.go, part of flint.
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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rmera/flint/run"
)

func testGenerator(Te *testing.T, script string) *Generator {
	dir := Te.TempDir()
	ckpt := filepath.Join(dir, "model.pt")
	if err := os.WriteFile(ckpt, []byte("weights"), 0o644); err != nil {
		Te.Fatal(err)
	}
	O := DefaultOptions()
	O.Config = "testdata/train_model.yml"
	O.Device = "cpu"
	O.Python = "/bin/sh"
	O.Script = filepath.Join(dir, "worker.sh")
	if err := os.WriteFile(O.Script, []byte(script), 0o644); err != nil {
		Te.Fatal(err)
	}
	G, err := New(ckpt, O)
	if err != nil {
		Te.Fatal(err)
	}
	return G
}

func TestNew(Te *testing.T) {
	G := testGenerator(Te, "")
	C := G.Config()
	if C.Train.NumWorkers != 4 || C.Train.Seed != 2021 {
		Te.Errorf("unexpected train section %+v", C.Train)
	}
	if C.Model["hidden_channels"] != 128 {
		Te.Errorf("unexpected model section %v", C.Model)
	}
	if G.O.Seed != DefaultSeed || G.O.ESMModel != "esm2_t33_650M_UR50D" {
		Te.Errorf("wrong seed or ESM model: %d %s", G.O.Seed, G.O.ESMModel)
	}
	empty := filepath.Join(Te.TempDir(), "empty.pt")
	os.WriteFile(empty, nil, 0o644)
	if _, err := New(empty, G.O); err == nil {
		Te.Error("an empty checkpoint should give an error")
	}
	if _, err := New("nothere.pt", G.O); err == nil {
		Te.Error("a missing checkpoint should give an error")
	}
}

func TestInteraction(Te *testing.T) {
	F, err := Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 0)
	if err != nil {
		Te.Fatal(err)
	}
	if len(F.Pocket) != 1 || F.Pocket[0].Name != "GLY" || F.Pocket[0].ID != 2 {
		Te.Errorf("unexpected pocket %v", F.Pocket)
	}
	if F.Sequence != "AGSK" || !filepath.IsAbs(F.Receptor) {
		Te.Errorf("unexpected features %+v", F)
	}
	F, err = Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 4)
	if err != nil {
		Te.Fatal(err)
	}
	if len(F.Pocket) != 3 {
		Te.Errorf("expected 3 pocket residues, got %v", F.Pocket)
	}
	L := Loader(F, 3)
	if len(L) != 3 || L[2].Index != 2 || L[2].Features != F {
		Te.Errorf("wrong loader %v", L)
	}
}

// fakeWorker returns a shell script that writes the mutants of n batches in rundir,
// reporting them as the worker does. Mutant skip is not written.
func fakeWorker(rundir string, n, skip int) string {
	var b strings.Builder
	b.WriteString("cat > /dev/null\n")
	b.WriteString("echo 'Downloading ESM weights'\n")
	b.WriteString(`echo '{"type":"log","msg":"PocketGen model loaded"}'` + "\n")
	for i := 0; i < n; i++ {
		rec, lig := run.MutantFiles(rundir, i)
		if i != skip {
			fmt.Fprintf(&b, "echo ATOM > %s\necho LIG > %s\n", rec, lig)
		}
		fmt.Fprintf(&b, "echo '{\"type\":\"batch\",\"batch\":%d}'\n", i)
	}
	return b.String()
}

func TestGenerate(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake worker is a shell script")
	}
	F, err := Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 0)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := run.Create(Te.TempDir())
	if err != nil {
		Te.Fatal(err)
	}
	rundir, _ := filepath.Abs(R.Dir)
	G := testGenerator(Te, fakeWorker(rundir, 3, -1))
	var done []int
	err = G.Generate(context.Background(), Loader(F, 3), R.Dir, func(b int) { done = append(done, b) })
	if err != nil {
		Te.Fatal(err)
	}
	if len(done) != 3 || done[0] != 0 || done[2] != 2 {
		Te.Errorf("expected batches 0 to 2 to be reported, got %v", done)
	}
	if n, _ := R.NMutants(); n != 3 {
		Te.Errorf("expected 3 mutants, got %d", n)
	}
}

func TestGenerateErrors(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake worker is a shell script")
	}
	F, err := Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 0)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := run.Create(Te.TempDir())
	if err != nil {
		Te.Fatal(err)
	}
	rundir, _ := filepath.Abs(R.Dir)
	G := testGenerator(Te, fakeWorker(rundir, 2, 1))
	err = G.Generate(context.Background(), Loader(F, 2), R.Dir, nil)
	if !errors.Is(err, ErrNoOutput) {
		Te.Errorf("expected ErrNoOutput, got %v", err)
	}
	G = testGenerator(Te, `cat > /dev/null
echo '{"type":"error","msg":"CUDA out of memory"}'
exit 1
`)
	err = G.Generate(context.Background(), Loader(F, 2), R.Dir, nil)
	if err == nil || !strings.Contains(err.Error(), "CUDA out of memory") {
		Te.Errorf("the worker error should be returned, got %v", err)
	}
	if err := G.Generate(context.Background(), nil, R.Dir, nil); err == nil {
		Te.Error("an empty loader should give an error")
	}
}

// An output line too long to be read must not leave the worker blocked.
func TestGenerateLongLine(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake worker is a shell script")
	}
	F, err := Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 0)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := run.Create(Te.TempDir())
	if err != nil {
		Te.Fatal(err)
	}
	rundir, _ := filepath.Abs(R.Dir)
	script := "cat > /dev/null\nhead -c 2000000 /dev/zero | tr '\\0' 'a'\necho\n" +
		"head -c 500000 /dev/zero | tr '\\0' 'b'\necho\n" + fakeWorker(rundir, 1, -1)
	G := testGenerator(Te, script)
	err = G.Generate(context.Background(), Loader(F, 1), R.Dir, nil)
	if !errors.Is(err, bufio.ErrTooLong) {
		Te.Errorf("expected bufio.ErrTooLong, got %v", err)
	}
}

// The worker gets the pocket and sequence computed here, not only the file names.
func TestGenerateRequest(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake worker is a shell script")
	}
	F, err := Interaction("../testdata/receptor.pdb", "../testdata/ligand.sdf", 4)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := run.Create(Te.TempDir())
	if err != nil {
		Te.Fatal(err)
	}
	rundir, _ := filepath.Abs(R.Dir)
	reqfile := filepath.Join(Te.TempDir(), "request.json")
	script := strings.Replace(fakeWorker(rundir, 2, -1), "cat > /dev/null", "cat > "+reqfile, 1)
	G := testGenerator(Te, script)
	if err := G.Generate(context.Background(), Loader(F, 2), R.Dir, nil); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(reqfile)
	if err != nil {
		Te.Fatal(err)
	}
	var req request
	if err := json.Unmarshal(b, &req); err != nil {
		Te.Fatal(err)
	}
	if len(req.Features.Pocket) != 3 || req.Features.Sequence != "AGSK" || req.Features.Pocket[0].Chain != "A" {
		Te.Errorf("the features were not sent to the worker: %+v", req.Features)
	}
	if req.Seed != DefaultSeed || req.NumWorkers != 4 || len(req.Batches) != 2 || req.Model["hidden_channels"] == nil {
		Te.Errorf("unexpected request %+v", req)
	}
	if rec, _ := run.MutantFiles(rundir, 1); req.Batches[1].Receptor != rec {
		Te.Errorf("expected target %s, got %s", rec, req.Batches[1].Receptor)
	}
}
