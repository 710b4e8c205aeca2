/*
 * trajectory.go, part of dumpviz.
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

package dumpviz

import (
	"sort"

	v3 "github.com/rmera/dumpviz/v3"
)

// Box holds the (lo,hi) bounds of an orthogonal simulation box for the x, y and z axes.
type Box [3][2]float64

// Unscale turns a scaled (fractional) coordinate along axis into a cartesian one.
func (B Box) Unscale(axis int, scaled float64) float64 {
	lo, hi := B[axis][0], B[axis][1]
	return scaled*(hi-lo) + lo
}

// Trajectory is a whole time series of frames, indexed by timestep.
// A Trajectory is never modified after NewTrajectory returns it.
type Trajectory struct {
	filename string
	frames   map[int]*v3.Matrix
	boxes    map[int]Box
	keys     []int
}

// NewTrajectory builds a Trajectory from a table of frames and the timesteps in the order
// they were found. The keys are sorted in ascending order and repeated timesteps are kept
// only once. The maps are used, not copied.
func NewTrajectory(filename string, frames map[int]*v3.Matrix, boxes map[int]Box, keys []int) *Trajectory {
	sorted := make([]int, len(keys))
	copy(sorted, keys)
	sort.Ints(sorted)
	uniq := sorted[:0]
	for i, k := range sorted {
		if i > 0 && k == sorted[i-1] {
			continue
		}
		uniq = append(uniq, k)
	}
	if frames == nil {
		frames = make(map[int]*v3.Matrix)
	}
	if boxes == nil {
		boxes = make(map[int]Box)
	}
	return &Trajectory{filename: filename, frames: frames, boxes: boxes, keys: uniq}
}

// FileName returns the name of the file the trajectory was read from.
func (T *Trajectory) FileName() string {
	return T.filename
}

// Len returns the number of frames (distinct timesteps).
func (T *Trajectory) Len() int {
	if T == nil {
		return 0
	}
	return len(T.keys)
}

// Keys returns a copy of the ascending timestep list.
func (T *Trajectory) Keys() []int {
	ret := make([]int, len(T.keys))
	copy(ret, T.keys)
	return ret
}

// Key returns the timestep at the position i of the playback order.
func (T *Trajectory) Key(i int) int {
	return T.keys[i]
}

// Frame returns the positions for the given timestep.
func (T *Trajectory) Frame(timestep int) (*v3.Matrix, bool) {
	f, ok := T.frames[timestep]
	return f, ok
}

// FrameAt returns the timestep and positions at position i of the playback order.
func (T *Trajectory) FrameAt(i int) (int, *v3.Matrix, bool) {
	if i < 0 || i >= len(T.keys) {
		return 0, nil, false
	}
	k := T.keys[i]
	f, ok := T.frames[k]
	return k, f, ok
}

// Box returns the box bounds recorded for the given timestep.
func (T *Trajectory) Box(timestep int) (Box, bool) {
	b, ok := T.boxes[timestep]
	return b, ok
}
