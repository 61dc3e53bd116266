/*
 * dock_test.go, part of flint.
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

package dock

import (
	"bufio"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rmera/flint"
)

func TestParseVinaLog(Te *testing.T) {
	f, err := os.Open("testdata/vina.log")
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	e, err := parseVinaLog(bufio.NewScanner(f))
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{-7.1, -6.5, -6}
	if len(e) != len(want) {
		Te.Fatalf("expected %v, got %v", want, e)
	}
	for i := range want {
		if e[i] != want[i] {
			Te.Errorf("pose %d: expected %f, got %f", i, want[i], e[i])
		}
	}
	_, err = parseVinaLog(bufio.NewScanner(strings.NewReader("Computing Vina grid ... done.\n")))
	if !errors.Is(err, ErrNoEnergies) {
		Te.Errorf("expected ErrNoEnergies, got %v", err)
	}
}

func TestVinaBuildInput(Te *testing.T) {
	dir := Te.TempDir()
	O := DefaultOptions()
	O.Seed = 2089
	O.CPU = 2
	v := NewVinaHandle(O)
	v.SetWorkDir(dir)
	v.SetName("job")
	box := flint.Box{Center: [3]float64{1, 2, 3}, Size: [3]float64{10, 12, 14}}
	if err := v.BuildInput("rec.pdbqt", "lig.pdbqt", box); err != nil {
		Te.Fatal(err)
	}
	conf, err := os.ReadFile(filepath.Join(dir, "job.conf"))
	if err != nil {
		Te.Fatal(err)
	}
	for _, l := range []string{"receptor = rec.pdbqt", "ligand = lig.pdbqt", "center_y = 2.000", "size_z = 14.000", "seed = 2089", "cpu = 2", "num_modes = 9"} {
		if !strings.Contains(string(conf), l+"\n") {
			Te.Errorf("line %q missing from the configuration:\n%s", l, conf)
		}
	}
	if err := v.BuildInput("rec.pdbqt", "lig.pdbqt", flint.Box{}); err == nil {
		Te.Error("an empty box should give an error")
	}
}

func TestPrepareArgs(Te *testing.T) {
	args, err := prepareArgs("rec.pdb", "rec.pdbqt")
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Join(args, " ") != "-ipdb rec.pdb -xr -opdbqt -O rec.pdbqt" {
		Te.Errorf("wrong receptor arguments %v", args)
	}
	args, err = prepareArgs("lig.sdf.gz", "lig.pdbqt")
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Join(args, " ") != "-isdf lig.sdf.gz -h -opdbqt -O lig.pdbqt" {
		Te.Errorf("wrong ligand arguments %v", args)
	}
	if _, err := prepareArgs("lig.xyz", "lig.pdbqt"); err == nil {
		Te.Error("unknown formats should give an error")
	}
	for name, want := range map[string]string{"lig.sdf.zst": "sdf", "REC.PDB.GZ": "pdb", "rec.pdbqt": "pdbqt"} {
		f, _, err := format(name)
		if err != nil || f != want {
			Te.Errorf("%s: expected format %s, got %q (%v)", name, want, f, err)
		}
	}
}

func TestDefaults(Te *testing.T) {
	O := DefaultOptions()
	if O.Vina != "vina" || O.Obabel != "obabel" || O.Padding != flint.DefaultBoxPadding {
		Te.Errorf("unexpected defaults %+v", O)
	}
}

// Receptor and ligand files sharing a base name must not overwrite each other.
func TestPrepareRoles(Te *testing.T) {
	O := fakePrograms(Te, 0)
	src := Te.TempDir()
	for _, f := range []string{"complex.pdb", "complex.sdf"} {
		if err := os.WriteFile(filepath.Join(src, f), []byte("x\n"), 0o644); err != nil {
			Te.Fatal(err)
		}
	}
	wrk := Te.TempDir()
	ctx := context.Background()
	rec, err := Prepare(ctx, filepath.Join(src, "complex.pdb"), "receptor", wrk, O)
	if err != nil {
		Te.Fatal(err)
	}
	lig, err := Prepare(ctx, filepath.Join(src, "complex.sdf"), "ligand", wrk, O)
	if err != nil {
		Te.Fatal(err)
	}
	if rec == lig {
		Te.Fatalf("receptor and ligand were prepared into the same file %s", rec)
	}
	b, err := os.ReadFile(rec)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(b), "complex.pdb") {
		Te.Errorf("the receptor PDBQT was overwritten: %s", b)
	}
	if _, err := Prepare(ctx, filepath.Join(src, "complex.pdb"), "", wrk, O); err == nil {
		Te.Error("an empty role should give an error")
	}
}

func TestVinaAbnormalTermination(Te *testing.T) {
	O := fakePrograms(Te, 0)
	if err := os.WriteFile(O.Vina, []byte("#!/bin/sh\necho 'Computing Vina grid ... done.'\n"), 0o755); err != nil {
		Te.Fatal(err)
	}
	v := NewVinaHandle(O)
	v.SetWorkDir(Te.TempDir())
	v.SetName("job")
	box := flint.Box{Center: [3]float64{1, 2, 3}, Size: [3]float64{10, 10, 10}}
	if err := v.BuildInput("rec.pdbqt", "lig.pdbqt", box); err != nil {
		Te.Fatal(err)
	}
	err := v.Run(context.Background())
	if !errors.Is(err, ErrNoEnergies) {
		Te.Errorf("a Vina run without poses should not be a normal termination, got %v", err)
	}
}

// fakePrograms writes shell scripts that stand for Open Babel and Vina.
func fakePrograms(Te *testing.T, vinaexit int) *Options {
	if runtime.GOOS == "windows" {
		Te.Skip("the fake programs are shell scripts")
	}
	dir := Te.TempDir()
	obabel := `#!/bin/sh
in="$2"
out=""
while [ $# -gt 0 ]; do
	if [ "$1" = "-O" ]; then out="$2"; fi
	shift
done
echo "REMARK fake pdbqt from $in" > "$out"
`
	vina := "#!/bin/sh\n"
	if vinaexit != 0 {
		vina += "echo 'Parse error' >&2\nexit 1\n"
	} else {
		vina += "cat " + filepath.Join(mustAbs(Te, "testdata"), "vina.log") + "\n"
	}
	O := DefaultOptions()
	O.Obabel = filepath.Join(dir, "obabel")
	O.Vina = filepath.Join(dir, "vina")
	O.WorkDir = dir
	if err := os.WriteFile(O.Obabel, []byte(obabel), 0o755); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(O.Vina, []byte(vina), 0o755); err != nil {
		Te.Fatal(err)
	}
	return O
}

func mustAbs(Te *testing.T, p string) string {
	a, err := filepath.Abs(p)
	if err != nil {
		Te.Fatal(err)
	}
	return a
}

func TestScore(Te *testing.T) {
	O := fakePrograms(Te, 0)
	ctx := context.Background()
	dg, kd, err := Score(ctx, "../testdata/receptor.pdb", "../testdata/ligand.sdf", O)
	if err != nil {
		Te.Fatal(err)
	}
	wantdg := (-7.1 - 6.5 - 6.0) / 3
	wantkd := (flint.DeltaG2Kd(-7.1) + flint.DeltaG2Kd(-6.5) + flint.DeltaG2Kd(-6.0)) / 3
	if math.Abs(dg-wantdg) > 1e-9 || math.Abs(kd-wantkd) > 1e-15 {
		Te.Errorf("expected dG %f Kd %g, got %f %g", wantdg, wantkd, dg, kd)
	}
	//scratch directories are removed
	left, _ := filepath.Glob(filepath.Join(O.WorkDir, "flint-dock-*"))
	if len(left) != 0 {
		Te.Errorf("scratch directories left behind: %v", left)
	}
}

func TestScoreFailure(Te *testing.T) {
	O := fakePrograms(Te, 1)
	dg, kd, err := Score(context.Background(), "../testdata/receptor.pdb", "../testdata/ligand.sdf", O)
	if err == nil {
		Te.Fatal("a failed docking should return an error")
	}
	if !strings.Contains(err.Error(), "Parse error") {
		Te.Errorf("the program's stderr should be in the error: %v", err)
	}
	if dg != 0 || kd != 1 {
		Te.Errorf("a failed docking should give dG=0 and Kd=1, got %f %f", dg, kd)
	}
}
