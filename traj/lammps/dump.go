/*
 * dump.go, part of dumpviz.
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

package lammps

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/rmera/dumpviz"
	v3 "github.com/rmera/dumpviz/v3"
)

// Record names, as used in FormatError.Expected.
const (
	Timestep = "TIMESTEP"
	NAtoms   = "NUMBER OF ATOMS"
	Box      = "BOX BOUNDS"
	Atoms    = "ATOMS"
)

const itemPrefix = "ITEM: "

const maxLine = 16 * 1024 * 1024

// Reader reads dump files. The zero value is ready to use and logs nothing.
type Reader struct {
	Log zerolog.Logger
}

// ReadFile is a shortcut for Reader{}.ReadFile, with logging disabled.
func ReadFile(name string) (*dumpviz.Trajectory, error) {
	R := Reader{Log: zerolog.Nop()}
	return R.ReadFile(name)
}

// ReadFile reads the whole dump file name and returns its trajectory.
// It returns a *dumpviz.NotFoundError if name does not exist and a
// *dumpviz.FormatError if the file is not a valid dump.
func (R Reader) ReadFile(name string) (*dumpviz.Trajectory, error) {
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dumpviz.NewNotFoundError(name, "lammps.ReadFile")
		}
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"os.Stat", "ReadFile"}, true}
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"os.Open", "ReadFile"}, true}
	}
	defer f.Close()
	rc, err := decompressor(name, f)
	if err != nil {
		return nil, &Error{UnableToDecompress + ": " + err.Error(), name, []string{"ReadFile"}, true}
	}
	defer rc.Close()
	traj, err := R.Read(rc, name)
	if err != nil {
		return nil, dumpviz.ErrDecorate(err, "ReadFile")
	}
	return traj, nil
}

// Read reads a whole, uncompressed, dump from r. name is only used in errors.
func (R Reader) Read(r io.Reader, name string) (*dumpviz.Trajectory, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, &Error{ReadError + ": " + err.Error(), name, []string{"Read"}, true}
	}
	return R.Parse(lines, name)
}

// Parse builds a trajectory from the lines of a dump file.
func (R Reader) Parse(lines []string, name string) (*dumpviz.Trajectory, error) {
	p := &parser{lines: lines, file: name}
	frames := make(map[int]*v3.Matrix)
	boxes := make(map[int]dumpviz.Box)
	keys := make([]int, 0, 16)
	for p.i < len(p.lines) {
		if !p.at(Timestep) {
			p.i++
			continue
		}
		step, coords, box, err := p.frame()
		if err != nil {
			return nil, dumpviz.ErrDecorate(err, "Parse")
		}
		if _, ok := frames[step]; ok {
			R.Log.Debug().Str("file", name).Int("timestep", step).Msg("Repeated timestep, the last one is kept")
		}
		frames[step] = coords
		boxes[step] = box
		keys = append(keys, step)
	}
	if len(keys) == 0 {
		return nil, dumpviz.NewFormatError(name, 0, Timestep, "", "Parse")
	}
	traj := dumpviz.NewTrajectory(name, frames, boxes, keys)
	R.Log.Debug().Str("file", name).Int("frames", traj.Len()).Msg("Dump parsed")
	return traj, nil
}

// decompressor picks a reader based on the file suffix, as traj/stf used to.
func decompressor(name string, f io.Reader) (io.ReadCloser, error) {
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".gz"):
		return gzip.NewReader(f)
	case strings.HasSuffix(lname, ".zst"), strings.HasSuffix(lname, ".zstd"):
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	default:
		return io.NopCloser(f), nil
	}
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	lines := make([]string, 0, 1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

type parser struct {
	lines []string
	i     int
	file  string
}

// at reports whether the current line is the marker for record.
func (p *parser) at(record string) bool {
	if p.i >= len(p.lines) {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(p.lines[p.i]), itemPrefix+record)
}

func (p *parser) fail(expected string) error {
	if p.i >= len(p.lines) {
		return dumpviz.NewFormatError(p.file, 0, expected, "", "parser")
	}
	return dumpviz.NewFormatError(p.file, p.i+1, expected, strings.TrimSpace(p.lines[p.i]), "parser")
}

// expect checks that the current line is the marker for record and moves past it.
// It returns the tokens after the marker.
func (p *parser) expect(record string) ([]string, error) {
	if !p.at(record) {
		return nil, p.fail(record)
	}
	fields := strings.Fields(strings.TrimSpace(p.lines[p.i])[len(itemPrefix)+len(record):])
	p.i++
	return fields, nil
}

// integer reads the current line as a single integer value of record.
func (p *parser) integer(record string) (int, error) {
	if p.i >= len(p.lines) {
		return 0, p.fail(record + " value")
	}
	v, err := strconv.Atoi(strings.TrimSpace(p.lines[p.i]))
	if err != nil {
		return 0, p.fail(record + " value")
	}
	p.i++
	return v, nil
}

func (p *parser) bounds() (dumpviz.Box, error) {
	var box dumpviz.Box
	for axis := 0; axis < 3; axis++ {
		if p.i >= len(p.lines) {
			return box, p.fail(Box + " line")
		}
		f := strings.Fields(p.lines[p.i])
		if len(f) < 2 {
			return box, p.fail(Box + " line")
		}
		//tilt factors, if any, are the third field and are ignored.
		for j := 0; j < 2; j++ {
			v, err := strconv.ParseFloat(f[j], 64)
			if err != nil {
				return box, p.fail(Box + " line")
			}
			box[axis][j] = v
		}
		p.i++
	}
	return box, nil
}

// columns returns the indexes of the coordinate columns in the ATOMS header, and
// whether they are scaled.
func columns(header []string) ([3]int, bool, bool) {
	find := func(names ...string) ([3]int, bool) {
		var ret [3]int
		for k, n := range names {
			ret[k] = -1
			for i, h := range header {
				if h == n {
					ret[k] = i
					break
				}
			}
			if ret[k] < 0 {
				return ret, false
			}
		}
		return ret, true
	}
	if idx, ok := find("xs", "ys", "zs"); ok {
		return idx, true, true
	}
	idx, ok := find("x", "y", "z")
	return idx, false, ok
}

// frame reads one whole frame, starting at its TIMESTEP marker.
func (p *parser) frame() (int, *v3.Matrix, dumpviz.Box, error) {
	var box dumpviz.Box
	if _, err := p.expect(Timestep); err != nil {
		return 0, nil, box, err
	}
	step, err := p.integer(Timestep)
	if err != nil {
		return 0, nil, box, err
	}
	if _, err := p.expect(NAtoms); err != nil {
		return 0, nil, box, err
	}
	natoms, err := p.integer(NAtoms)
	if err != nil {
		return 0, nil, box, err
	}
	if natoms < 0 {
		p.i--
		return 0, nil, box, p.fail("non-negative " + NAtoms + " value")
	}
	if _, err := p.expect(Box); err != nil {
		return 0, nil, box, err
	}
	box, err = p.bounds()
	if err != nil {
		return 0, nil, box, err
	}
	header, err := p.expect(Atoms)
	if err != nil {
		return 0, nil, box, err
	}
	idx, scaled, ok := columns(header)
	if !ok {
		p.i--
		return 0, nil, box, p.fail(Atoms + " header with x y z or xs ys zs columns")
	}
	maxcol := idx[0]
	for _, v := range idx[1:] {
		if v > maxcol {
			maxcol = v
		}
	}
	if natoms > len(p.lines)-p.i {
		p.i = len(p.lines)
		return 0, nil, box, p.fail(Atoms + " line")
	}
	coords := v3.Zeros(natoms)
	var xyz [3]float64
	for atom := 0; atom < natoms; atom++ {
		if p.i >= len(p.lines) {
			return 0, nil, box, p.fail(Atoms + " line")
		}
		f := strings.Fields(p.lines[p.i])
		if len(f) <= maxcol {
			return 0, nil, box, p.fail(Atoms + " line")
		}
		for axis, col := range idx {
			v, err := strconv.ParseFloat(f[col], 64)
			if err != nil {
				return 0, nil, box, p.fail(Atoms + " line")
			}
			if scaled {
				v = box.Unscale(axis, v)
			}
			xyz[axis] = v
		}
		coords.SetVec(atom, xyz[0], xyz[1], xyz[2])
		p.i++
	}
	return step, coords, box, nil
}
