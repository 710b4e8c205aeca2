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

package dumpviz

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an input file does not exist.
// It implements TrajError.
type NotFoundError struct {
	Path string
	deco []string
}

func NewNotFoundError(path, caller string) *NotFoundError {
	return &NotFoundError{Path: path, deco: []string{caller}}
}

func (E *NotFoundError) Error() string {
	return fmt.Sprintf("dumpviz: file not found: %s", E.Path)
}

func (E *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *NotFoundError) Critical() bool   { return true }
func (E *NotFoundError) FileName() string { return E.Path }

// FormatError is returned when a record in a dump file is not the one expected.
// Line is 1-based, or 0 when the file ended before the expected record.
type FormatError struct {
	File     string
	Line     int
	Expected string
	Found    string
	deco     []string
}

func NewFormatError(file string, line int, expected, found, caller string) *FormatError {
	return &FormatError{File: file, Line: line, Expected: expected, Found: found, deco: []string{caller}}
}

func (E *FormatError) Error() string {
	if E.Line == 0 {
		return fmt.Sprintf("dumpviz: %s: expected %s, found end of file", E.File, E.Expected)
	}
	return fmt.Sprintf("dumpviz: %s:%d: expected %s, found %q", E.File, E.Line, E.Expected, E.Found)
}

func (E *FormatError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *FormatError) Critical() bool   { return true }
func (E *FormatError) FileName() string { return E.File }

// PreconditionError is returned when an action is requested before something it needs
// exists. It is a warning: the action is cancelled and nothing is changed.
type PreconditionError struct {
	Action  string
	Missing string
	deco    []string
}

func NewPreconditionError(action, missing string) *PreconditionError {
	return &PreconditionError{Action: action, Missing: missing, deco: []string{action}}
}

func (E *PreconditionError) Error() string {
	return fmt.Sprintf("dumpviz: cannot %s: %s", E.Action, E.Missing)
}

func (E *PreconditionError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *PreconditionError) Critical() bool { return false }

// IsPrecondition reports whether err is, or wraps, a PreconditionError.
func IsPrecondition(err error) bool {
	var p *PreconditionError
	return errors.As(err, &p)
}

// ErrDecorate decorates err with caller if err implements Error, and returns it.
// Other errors are returned untouched.
func ErrDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
