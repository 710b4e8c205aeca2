/*
 * errors.go, part of dumpviz.
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

import "fmt"

// Error is the general structure for I/O errors while reading dumps. *Error fulfills dumpviz.TrajError.
// Malformed dumps give a *dumpviz.FormatError instead.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("LAMMPS dump file %s error: %s", err.filename, err.message)
}

func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err *Error) FileName() string { return err.filename }

func (err *Error) Critical() bool { return err.critical }

const (
	UnableToOpen       = "Unable to open file"
	UnableToDecompress = "Unable to set up decompression"
	ReadError          = "Error reading file"
)
