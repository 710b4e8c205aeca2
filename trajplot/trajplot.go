/*
 * trajplot.go, part of dumpviz.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche
 */

//Package trajplot summarizes a loaded trajectory: particles per timestep and RMS displacement
//from the first frame, and plots the latter.
package trajplot

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/dumpviz"
	v3 "github.com/rmera/dumpviz/v3"
)

// Summary has one entry per timestep, in playback order.
type Summary struct {
	Timesteps []int
	Atoms     []int
	//RMSD is the RMS displacement from the first frame. It is NaN for frames
	//with a different number of particles than the first one.
	RMSD      []float64
	MeanAtoms float64
	MaxRMSD   float64
}

// flat returns the coordinates of F as one slice, x0 y0 z0 x1...
func flat(F *v3.Matrix) []float64 {
	n := F.NVecs()
	if n == 0 {
		return nil
	}
	raw := F.RawMatrix()
	if raw.Stride == 3 {
		return raw.Data[:3*n]
	}
	ret := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		v := F.Vec(i)
		ret = append(ret, v[:]...)
	}
	return ret
}

// Summarize computes the summary of traj.
func Summarize(traj *dumpviz.Trajectory) (*Summary, error) {
	if traj.Len() == 0 {
		return nil, errors.New("trajplot: empty trajectory")
	}
	n := traj.Len()
	S := &Summary{
		Timesteps: traj.Keys(),
		Atoms:     make([]int, n),
		RMSD:      make([]float64, n),
	}
	_, first, _ := traj.FrameAt(0)
	ref := flat(first)
	counts := make([]float64, n)
	for i := 0; i < n; i++ {
		_, f, _ := traj.FrameAt(i)
		S.Atoms[i] = f.NVecs()
		counts[i] = float64(S.Atoms[i])
		if S.Atoms[i] != first.NVecs() {
			S.RMSD[i] = math.NaN()
			continue
		}
		if S.Atoms[i] == 0 {
			continue
		}
		S.RMSD[i] = floats.Distance(flat(f), ref, 2) / math.Sqrt(float64(S.Atoms[i]))
		S.MaxRMSD = math.Max(S.MaxRMSD, S.RMSD[i])
	}
	S.MeanAtoms = stat.Mean(counts, nil)
	return S, nil
}

// segments splits the RMSD curve at the NaN gaps.
func (S *Summary) segments() []plotter.XYs {
	var ret []plotter.XYs
	var cur plotter.XYs
	for i, r := range S.RMSD {
		if math.IsNaN(r) {
			if len(cur) > 0 {
				ret = append(ret, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: float64(S.Timesteps[i]), Y: r})
	}
	if len(cur) > 0 {
		ret = append(ret, cur)
	}
	return ret
}

// Plot draws the RMS displacement of traj against the timestep and saves it as a PNG
// image in filename. filename should end in ".png".
func Plot(traj *dumpviz.Trajectory, title, filename string) error {
	S, err := Summarize(traj)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Timestep"
	p.Y.Label.Text = "RMS displacement"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	for _, seg := range S.segments() {
		l, s, err := plotter.NewLinePoints(seg)
		if err != nil {
			return err
		}
		s.Radius = vg.Points(1.5)
		p.Add(l, s)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
