/*
 * export_test.go, part of dumpviz.
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

package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/memhost"
)

type fakeExporter struct {
	req dumpviz.ExportRequest
	n   int
	err error
}

func (F *fakeExporter) Export(ctx context.Context, req dumpviz.ExportRequest) error {
	F.req = req
	F.n++
	return F.err
}

func TestDriver(t *testing.T) {
	tl := memhost.NewTimeline()
	tl.SetRange(1, 10)
	carrier := memhost.NewScene().NewPointObject("AtomInstancer")
	fe := &fakeExporter{}
	d := Driver{Exporter: fe, Timeline: tl}

	require.NoError(t, d.Export(context.Background(), "out.db", carrier, 3))
	assert.Equal(t, 1, fe.n)
	assert.Equal(t, []int{1, 4, 7, 10}, fe.req.Frames())
	assert.Equal(t, DefaultOptions(), fe.req.Options)
	assert.Equal(t, []dumpviz.Object{carrier}, fe.req.Objects)

	fe.err = errors.New("disk full")
	err := d.Export(context.Background(), "out.db", carrier, 1)
	assert.ErrorIs(t, err, fe.err)
	assert.False(t, dumpviz.IsPrecondition(err))
}

func TestDriverPreconditions(t *testing.T) {
	tl := memhost.NewTimeline()
	carrier := memhost.NewScene().NewPointObject("AtomInstancer")
	fe := &fakeExporter{}
	cases := []struct {
		d       Driver
		path    string
		carrier dumpviz.Object
	}{
		{Driver{Exporter: fe, Timeline: tl}, "out.db", nil},
		{Driver{Exporter: fe, Timeline: tl}, "", carrier},
		{Driver{Timeline: tl}, "out.db", carrier},
		{Driver{Exporter: fe}, "out.db", carrier},
	}
	for i, c := range cases {
		err := c.d.Export(context.Background(), c.path, c.carrier, 1)
		assert.True(t, dumpviz.IsPrecondition(err), "case %d", i)
	}
	assert.Equal(t, 0, fe.n)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1.0, o.GlobalScale)
	assert.Equal(t, dumpviz.BakeOptions{GlobalScale: 1}, o)
}
