/*
 * trajplot_test.go, part of dumpviz.
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
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
	v3 "github.com/rmera/dumpviz/v3"
)

func mustMatrix(t *testing.T, data ...float64) *v3.Matrix {
	t.Helper()
	m, err := v3.NewMatrix(data)
	require.NoError(t, err)
	return m
}

func testTraj(t *testing.T) *dumpviz.Trajectory {
	frames := map[int]*v3.Matrix{
		0:  mustMatrix(t, 0, 0, 0, 1, 1, 1),
		10: mustMatrix(t, 1, 0, 0, 1, 1, 2),
		20: mustMatrix(t, 0, 0, 0),
		30: mustMatrix(t, 0, 3, 0, 1, 1, 1),
	}
	return dumpviz.NewTrajectory("test", frames, nil, []int{30, 0, 20, 10})
}

func TestSummarize(t *testing.T) {
	S, err := Summarize(testTraj(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30}, S.Timesteps)
	assert.Equal(t, []int{2, 2, 1, 2}, S.Atoms)
	assert.Equal(t, 0.0, S.RMSD[0])
	assert.InDelta(t, 1.0, S.RMSD[1], 1e-12) //sqrt((1+1)/2)
	assert.True(t, math.IsNaN(S.RMSD[2]))
	assert.InDelta(t, 3/math.Sqrt(2), S.RMSD[3], 1e-12)
	assert.InDelta(t, 3/math.Sqrt(2), S.MaxRMSD, 1e-12)
	assert.InDelta(t, 1.75, S.MeanAtoms, 1e-12)
	assert.Len(t, S.segments(), 2)

	_, err = Summarize(nil)
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rmsd.png")
	require.NoError(t, Plot(testTraj(t), "Test RMSD", name))
	fi, err := os.Stat(name)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestHistogram(t *testing.T) {
	traj := testTraj(t)
	d, err := Displacements(traj, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0}, d)
	_, err = Displacements(traj, 2)
	assert.Error(t, err, "different particle count")
	_, err = Displacements(traj, 9)
	assert.Error(t, err)

	div := EvenDividers(0, 4, 4)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, div)
	h, err := NewHistogram(div, []float64{3, 0, 0.5, 9, -1, 4})
	require.NoError(t, err)
	assert.Equal(t, 3, h.Total(), "out of range values are dropped")
	assert.Equal(t, []float64{2, 0, 0, 1}, h.Counts())
	h.Normalize()
	h.Normalize()
	assert.True(t, h.Normalized())
	assert.InDeltaSlice(t, []float64{2.0 / 3, 0, 0, 1.0 / 3}, h.Counts(), 1e-12)

	_, err = NewHistogram([]float64{1}, nil)
	assert.Error(t, err)
	_, err = NewHistogram([]float64{2, 1}, nil)
	assert.Error(t, err)
}
