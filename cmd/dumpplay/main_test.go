/*
 * main_test.go, part of dumpviz.
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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/config"
)

const dump = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
2
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id x y z
1 0 0 0
2 1 1 1
ITEM: TIMESTEP
10
ITEM: NUMBER OF ATOMS
2
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id x y z
1 1 0 0
2 1 2 1
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	cfg.DumpPath = filepath.Join(dir, "run.dump")
	require.NoError(t, os.WriteFile(cfg.DumpPath, []byte(dump), 0o644))
	cfg.Prototype = "Sphere"
	cfg.Export.Path = filepath.Join(dir, "run.db")
	cfg.Plot.Path = filepath.Join(dir, "run.png")

	require.NoError(t, run(context.Background(), cfg, zerolog.Nop()))
	for _, p := range []string{cfg.Export.Path, cfg.Plot.Path} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestRunMissingDump(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	cfg.DumpPath = filepath.Join(dir, "nope.dump")

	err = run(context.Background(), cfg, zerolog.Nop())
	var nf *dumpviz.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
