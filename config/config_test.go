/*
 * config_test.go, part of dumpviz.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
)

func TestLoad_DefaultValues(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", s.DumpPath)
	assert.Equal(t, 0.2, s.AtomScale)
	assert.Equal(t, 1, s.StartFrame)
	assert.Equal(t, 1, s.Step)
	assert.True(t, s.LivePlayback)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Graylog.Enabled)
	assert.Equal(t, "localhost:12201", s.Graylog.Address)
	assert.Equal(t, "", s.Export.DSN)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"dumpPath": "run/traj.dump.gz",
		"prototype": "Sphere",
		"atomScale": 0.5,
		"step": 4,
		"livePlayback": false,
		"export": { "path": "bake.db" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(cfg), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "run/traj.dump.gz", s.DumpPath)
	assert.Equal(t, "Sphere", s.Prototype)
	assert.Equal(t, 0.5, s.AtomScale)
	assert.Equal(t, 4, s.Step)
	assert.Equal(t, 1, s.StartFrame)
	assert.False(t, s.LivePlayback)
	assert.Equal(t, "bake.db", s.Export.Path)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DUMPVIZ_STARTFRAME", "10")
	t.Setenv("DUMPVIZ_GRAYLOG_ENABLED", "true")
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 10, s.StartFrame)
	assert.True(t, s.Graylog.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{"step": 0}`), 0o644))
	_, err := Load(dir)
	assert.True(t, dumpviz.IsPrecondition(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{not json`), 0o644))
	_, err = Load(dir)
	assert.Error(t, err)
	assert.False(t, dumpviz.IsPrecondition(err))
}
