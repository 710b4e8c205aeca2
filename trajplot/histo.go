/*
 * histo.go, part of dumpviz.
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
 */

package trajplot

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rmera/dumpviz"
)

// Histogram counts values into the bins delimited by consecutive dividers.
// Values outside [dividers[0], dividers[last]) are not counted.
type Histogram struct {
	dividers   []float64
	histo      []float64
	total      int
	normalized bool
}

// NewHistogram returns the histogram of rawdata over the given dividers. Neither slice
// is modified.
func NewHistogram(dividers, rawdata []float64) (*Histogram, error) {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("trajplot: need at least 2 sorted dividers, got %v", dividers)
	}
	H := &Histogram{dividers: append([]float64(nil), dividers...)}
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics on values out of range, so they are dropped here.
	maxi := sort.SearchFloat64s(data, H.dividers[len(H.dividers)-1])
	data = data[:maxi]
	mini := sort.SearchFloat64s(data, H.dividers[0])
	data = data[mini:]
	H.total = len(data)
	H.histo = stat.Histogram(nil, H.dividers, data, nil)
	return H, nil
}

// EvenDividers returns n+1 dividers that split [lo,hi] into n bins of equal width.
func EvenDividers(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), lo, hi)
}

// Total returns the number of values counted.
func (H *Histogram) Total() int { return H.total }

// Dividers returns a copy of the bin limits.
func (H *Histogram) Dividers() []float64 {
	return append([]float64(nil), H.dividers...)
}

// Counts returns a copy of the bin contents. If the histogram is normalized, they add up to 1.
func (H *Histogram) Counts() []float64 {
	return append([]float64(nil), H.histo...)
}

// Normalize scales the bins so they add up to 1. It does nothing on an empty histogram.
func (H *Histogram) Normalize() {
	if H.normalized || H.total <= 0 {
		return
	}
	floats.Scale(1/float64(H.total), H.histo)
	H.normalized = true
}

func (H *Histogram) Normalized() bool { return H.normalized }

// Displacements returns the distance each particle of the frame at position i of traj has moved
// from its place in the first frame. The two frames must have the same number of particles.
func Displacements(traj *dumpviz.Trajectory, i int) ([]float64, error) {
	_, ref, ok := traj.FrameAt(0)
	if !ok {
		return nil, fmt.Errorf("trajplot: empty trajectory")
	}
	ts, f, ok := traj.FrameAt(i)
	if !ok {
		return nil, fmt.Errorf("trajplot: no frame %d in a %d-frame trajectory", i, traj.Len())
	}
	if f.NVecs() != ref.NVecs() {
		return nil, fmt.Errorf("trajplot: timestep %d has %d particles, the first frame %d", ts, f.NVecs(), ref.NVecs())
	}
	ret := make([]float64, f.NVecs())
	for j := range ret {
		a, b := f.Vec(j), ref.Vec(j)
		ret[j] = floats.Distance(a[:], b[:], 2)
	}
	return ret, nil
}
