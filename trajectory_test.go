/*
 * trajectory_test.go, part of dumpviz.
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
	"errors"
	"fmt"
	"slices"
	"testing"

	v3 "github.com/rmera/dumpviz/v3"
)

func TestTrajectory(Te *testing.T) {
	a, _ := v3.NewMatrix([]float64{0, 0, 0})
	b, _ := v3.NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	frames := map[int]*v3.Matrix{5: a, 1: b}
	t := NewTrajectory("test", frames, nil, []int{5, 1, 5})
	if !slices.Equal(t.Keys(), []int{1, 5}) {
		Te.Errorf("Keys not sorted and unique: %v", t.Keys())
	}
	if t.Len() != 2 {
		Te.Errorf("Len is %d, expected 2", t.Len())
	}
	ts, f, ok := t.FrameAt(0)
	if !ok || ts != 1 || f.NVecs() != 2 {
		Te.Errorf("Wrong first frame: %d %v %v", ts, f, ok)
	}
	if _, _, ok := t.FrameAt(2); ok {
		Te.Error("FrameAt out of range should fail")
	}
	k := t.Keys()
	k[0] = 100
	if t.Key(0) != 1 {
		Te.Error("Keys should return a copy")
	}
	var empty *Trajectory
	if empty.Len() != 0 {
		Te.Error("A nil trajectory has no frames")
	}
}

func TestUnscale(Te *testing.T) {
	box := Box{{-1, 3}, {0, 10}, {2, 2.5}}
	for axis := 0; axis < 3; axis++ {
		if lo := box.Unscale(axis, 0); lo != box[axis][0] {
			Te.Errorf("axis %d: unscale(0) = %f, expected %f", axis, lo, box[axis][0])
		}
		if hi := box.Unscale(axis, 1); hi != box[axis][1] {
			Te.Errorf("axis %d: unscale(1) = %f, expected %f", axis, hi, box[axis][1])
		}
	}
	if m := box.Unscale(0, 0.5); m != 1 {
		Te.Errorf("unscale(0.5) = %f, expected 1", m)
	}
}

func TestExportFrames(Te *testing.T) {
	r := ExportRequest{Start: 1, End: 11, Step: 5}
	if f := r.Frames(); !slices.Equal(f, []int{1, 6, 11}) {
		Te.Errorf("Frames: %v", f)
	}
	r.Step = 0
	if f := r.Frames(); len(f) != 11 {
		Te.Errorf("Step 0 should count as 1, got %v", f)
	}
	r.End = 0
	if f := r.Frames(); f != nil {
		Te.Errorf("An empty range has no frames, got %v", f)
	}
}

func TestErrors(Te *testing.T) {
	var err error = NewFormatError("a.dump", 7, "BOX BOUNDS", "ITEM: ATOMS id x y z", "parser")
	err = ErrDecorate(fmt.Errorf("loading: %w", err), "Load")
	var f *FormatError
	if !errors.As(err, &f) {
		Te.Fatal("FormatError lost in wrapping")
	}
	if d := f.Decorate(""); !slices.Equal(d, []string{"parser", "Load"}) {
		Te.Errorf("Wrong decoration: %v", d)
	}
	if !f.Critical() || f.FileName() != "a.dump" {
		Te.Error("FormatError should be critical and carry its file name")
	}
	if IsPrecondition(err) {
		Te.Error("A FormatError is not a PreconditionError")
	}
	p := NewPreconditionError("apply scale", "build the graph first")
	if !IsPrecondition(fmt.Errorf("x: %w", p)) || p.Critical() {
		Te.Error("PreconditionError should be found and not critical")
	}
	eof := NewFormatError("a.dump", 0, "TIMESTEP", "", "Parse")
	if eof.Error() != "dumpviz: a.dump: expected TIMESTEP, found end of file" {
		Te.Errorf("Unexpected message: %s", eof)
	}
	var _ TrajError = NewNotFoundError("x", "y")
	var _ TrajError = f
}
