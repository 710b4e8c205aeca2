/*
 * playback.go, part of dumpviz.
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

	"go.opentelemetry.io/otel/metric"

	"github.com/rmera/dumpviz"
)

// FrameIndex maps the timeline position pos to an index in a list of n frames, shown one every
// step timeline positions from start on. Steps below 1 count as 1. The result is clamped to
// [0,n-1]: positions before start show the first frame, positions after the last one hold it.
// It returns -1 if n is 0.
func FrameIndex(pos, start, step, n int) int {
	if n <= 0 {
		return -1
	}
	step = max(step, 1)
	d := pos - start
	t := d / step
	if d%step != 0 && d < 0 {
		t-- //floor, not truncation
	}
	return min(max(t, 0), n-1)
}

// Tick shows in the carrier the frame that corresponds to the timeline position pos.
// It is the handler subscribed to the timeline. It never fails: when there is nothing to
// show the carrier is left as it is.
func (S *Session) Tick(pos int) {
	traj, carrier := S.traj, S.carrier
	if !S.registered || traj.Len() == 0 || carrier == nil {
		S.count(tickNoop)
		return
	}
	t := FrameIndex(pos, S.settings.Start, S.settings.Step, traj.Len())
	ts, frame, ok := traj.FrameAt(t)
	if !ok || frame.NVecs() == 0 {
		S.count(tickNoop)
		return
	}
	mesh := carrier.Mesh()
	n := frame.NVecs()
	if mesh.Len() == n {
		for i := 0; i < n; i++ {
			mesh.SetVec(i, frame.At(i, 0), frame.At(i, 1), frame.At(i, 2))
		}
		mesh.Update()
		S.count(tickFast)
		S.log.Trace().Int("pos", pos).Int("timestep", ts).Msg("frame moved in place")
		return
	}
	S.log.Debug().Int("pos", pos).Int("timestep", ts).Int("from", mesh.Len()).Int("to", n).Msg("particle count changed, rebuilding carrier")
	mesh.Rebuild(frame)
	mesh.Update()
	S.count(tickRebuild)
}

// BoxAt returns the simulation box of the frame shown at the timeline position pos.
func (S *Session) BoxAt(pos int) (dumpviz.Box, bool) {
	traj := S.traj
	if traj.Len() == 0 {
		return dumpviz.Box{}, false
	}
	t := FrameIndex(pos, S.settings.Start, S.settings.Step, traj.Len())
	return traj.Box(traj.Key(t))
}

func (S *Session) count(outcome metric.AddOption) {
	S.ticks.Add(context.Background(), 1, outcome)
}

// EnablePlayback subscribes Tick to the timeline. Enabling it twice subscribes it once.
func (S *Session) EnablePlayback() {
	S.settings.LivePlayback = true
	if S.registered {
		return
	}
	S.sub = S.timeline.Subscribe(S.Tick)
	S.registered = true
	S.log.Info().Msg("live playback on")
}

// DisablePlayback unsubscribes Tick from the timeline. It does nothing if Tick is not subscribed.
// If the timeline refuses, the session stays registered and LivePlayback stays on.
func (S *Session) DisablePlayback() error {
	if err := S.unsubscribe(); err != nil {
		return fmt.Errorf("session: disabling playback: %w", err)
	}
	S.settings.LivePlayback = false
	return nil
}

// unsubscribe removes Tick from the timeline without touching the settings.
func (S *Session) unsubscribe() error {
	if !S.registered {
		return nil
	}
	if err := S.timeline.Unsubscribe(S.sub); err != nil {
		return err
	}
	S.sub = dumpviz.Subscription{}
	S.registered = false
	S.log.Info().Msg("live playback off")
	return nil
}
