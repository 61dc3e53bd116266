/*
 * plot.go, part of flint.
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
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot draws a bar chart with the docking free energy of each entry of S and saves it
// to the file name. The format is taken from the extension (png, svg, pdf...).
func Plot(S *Summary, name string) error {
	errid := "Plot"
	if S == nil || len(S.Rows) == 0 {
		return fmt.Errorf("%s: empty summary", errid)
	}
	vals := make(plotter.Values, len(S.Rows))
	labels := make([]string, len(S.Rows))
	for i, r := range S.Rows {
		vals[i] = r.DeltaG
		labels[i] = r.ID
	}
	p := plot.New()
	p.Title.Text = "Docking free energies"
	p.Title.Padding = 3 * vg.Millimeter
	p.Y.Label.Text = "ΔG (kcal/mol)"
	p.Add(plotter.NewGrid())
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotter.DefaultLineStyle.Color
	p.Add(bars)
	if o := S.Original(); o != nil {
		//reference line at the free energy of the original complex
		ref := plotter.NewFunction(func(float64) float64 { return o.DeltaG })
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("original (%.2f)", o.DeltaG), ref)
	}
	p.NominalX(labels...)
	width := vg.Length(len(S.Rows))*vg.Points(30) + 2*vg.Inch
	if err := p.Save(width, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Plot draws the summary of the run into its summary.png file.
func (R *Run) Plot(S *Summary) error {
	return Plot(S, filepath.Join(R.Dir, PlotFile))
}
