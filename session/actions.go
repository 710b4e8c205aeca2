/*
 * actions.go, part of dumpviz.
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

package session

import (
	"context"
	"fmt"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/export"
	"github.com/rmera/dumpviz/instancing"
	"github.com/rmera/dumpviz/traj/lammps"
	v3 "github.com/rmera/dumpviz/v3"
)

// LoadReport summarizes a load.
type LoadReport struct {
	Atoms  int //in the first frame
	Frames int
	Start  int
	End    int
}

// Load parses the dump file at path and installs it with LoadTrajectory. If the file cannot be
// read or parsed the session is left exactly as it was.
func (S *Session) Load(path string) (LoadReport, error) {
	if path == "" {
		return LoadReport{}, S.warn(dumpviz.NewPreconditionError("load dump", "no dump path set"))
	}
	traj, err := lammps.Reader{Log: S.log}.ReadFile(path)
	if err != nil {
		S.log.Error().Err(err).Str("path", path).Msg("load failed")
		return LoadReport{}, dumpviz.ErrDecorate(err, "session.Load")
	}
	return S.LoadTrajectory(traj)
}

// LoadTrajectory replaces the session trajectory with traj. The carrier is reused (or created)
// and rebuilt with the first frame, the timeline range is set to fit all the frames, the
// instancing graph is built if a prototype is set, and playback is enabled or disabled
// following the settings.
func (S *Session) LoadTrajectory(traj *dumpviz.Trajectory) (LoadReport, error) {
	if traj.Len() == 0 {
		return LoadReport{}, S.warn(dumpviz.NewPreconditionError("load trajectory", "the trajectory has no frames"))
	}
	_, first, _ := traj.FrameAt(0)
	atoms := first.NVecs()
	carrier := S.carrierObject()
	if atoms == 0 {
		//one vertex at the origin, so the carrier is never empty.
		first = v3.Zeros(1)
	}
	carrier.Mesh().Rebuild(first)
	carrier.Mesh().Update()
	S.traj = traj

	n := traj.Len()
	rep := LoadReport{
		Atoms:  atoms,
		Frames: n,
		Start:  S.settings.Start,
		End:    S.settings.Start + (n-1)*max(S.settings.Step, 1),
	}
	S.timeline.SetRange(rep.Start, rep.End)

	if S.settings.Prototype != nil {
		if err := S.BuildGraph(); err != nil {
			return rep, err
		}
	}
	if S.settings.LivePlayback {
		S.EnablePlayback()
	} else if err := S.DisablePlayback(); err != nil {
		return rep, err
	}
	S.log.Info().Str("file", traj.FileName()).Int("atoms", rep.Atoms).Int("frames", rep.Frames).Msg("dump loaded")
	return rep, nil
}

// BuildGraph builds, or rebuilds, the instancing graph on the carrier, creating an empty carrier
// if nothing was loaded yet. It needs a prototype in the settings.
func (S *Session) BuildGraph() error {
	if S.settings.Prototype == nil {
		return S.warn(dumpviz.NewPreconditionError("build instancing graph", "no prototype object set"))
	}
	carrier := S.carrierObject()
	g, err := instancing.Build(S.scene, carrier, S.settings.Prototype, S.settings.AtomScale, ModifierName)
	if err != nil {
		return S.warn(err)
	}
	if err := instancing.OrderModifiers(carrier, ModifierName); err != nil {
		return S.warn(err)
	}
	S.graph = g
	S.log.Info().Str("prototype", S.settings.Prototype.Name()).Float64("scale", S.settings.AtomScale).Msg("instancing graph ready")
	return nil
}

// ApplyScale sets the instance scale of the graph in place, and records it in the settings.
// It fails with a *dumpviz.PreconditionError if there is no carrier or no graph built on it.
func (S *Session) ApplyScale(s float64) error {
	if S.carrier == nil {
		return S.warn(dumpviz.NewPreconditionError("apply scale", "no dump loaded"))
	}
	g := S.graph
	if g == nil {
		var err error
		if g, err = instancing.Find(S.carrier, ModifierName); err != nil {
			return S.warn(dumpviz.NewPreconditionError("apply scale", "build the instancing graph first"))
		}
		S.graph = g
	}
	if err := g.SetScale(s); err != nil {
		return S.warn(err)
	}
	S.settings.AtomScale = s
	S.log.Info().Float64("scale", s).Msg("atom scale applied")
	return nil
}

// Export bakes the carrier over the timeline range into path, with the session exporter.
func (S *Session) Export(ctx context.Context, path string) error {
	if S.traj == nil || S.carrier == nil {
		return S.warn(dumpviz.NewPreconditionError("export", "no dump loaded"))
	}
	d := export.Driver{Exporter: S.exporter, Timeline: S.timeline, Log: S.log}
	if err := d.Export(ctx, path, S.carrier, S.settings.Step); err != nil {
		if dumpviz.IsPrecondition(err) {
			return S.warn(err)
		}
		return fmt.Errorf("session: %w", err)
	}
	return nil
}
