/*
 * gonum.go, part of dumpviz.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//gonum.go holds the Matrix type and everything that touches gonum's mat package directly.
//Within the package a "vector" is a row, i.e. the cartesian coordinates of one particle.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// data is used as the backing slice, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return Zeros(0), nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
// A zero-vector matrix is valid and has a nil Dense.
func Zeros(vecs int) *Matrix {
	if vecs == 0 {
		return &Matrix{nil}
	}
	return &Matrix{mat.NewDense(vecs, cols, nil)}
}

// NVecs returns the number of vectors in F. A nil or empty matrix has none.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.Dense.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns the ith vector as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to (x,y,z).
func (F *Matrix) SetVec(i int, x, y, z float64) {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, x)
	F.Set(i, 1, y)
	F.Set(i, 2, z)
}

// Copy puts a copy of A in F. Both must have the same number of vectors.
func (F *Matrix) Copy(A *Matrix) {
	if F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	if A.NVecs() == 0 {
		return
	}
	F.Dense.Copy(A.Dense)
}

// Clone returns a newly allocated copy of F.
func (F *Matrix) Clone() *Matrix {
	ret := Zeros(F.NVecs())
	ret.Copy(F)
	return ret
}

// EqualApprox returns whether F and A have the same shape and all their
// elements are within tol of each other.
func (F *Matrix) EqualApprox(A *Matrix, tol float64) bool {
	if F.NVecs() != A.NVecs() {
		return false
	}
	if F.NVecs() == 0 {
		return true
	}
	return mat.EqualApprox(F.Dense, A.Dense, tol)
}

//Errors

// Error is the v3 error type. It mirrors dumpviz.Error without importing it.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("dumpviz/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("dumpviz/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("dumpviz/v3: index out of range")
)
