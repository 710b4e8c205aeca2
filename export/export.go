/*
 * export.go, part of dumpviz.
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

//Package export drives a host exporter over the timeline range, to bake the animated carrier
//geometry into an interchange file.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rmera/dumpviz"
)

// DefaultOptions are the fixed baking options: unit scale, every object in the scene (not only
// the selected or visible ones), no flattening, no subdivision schema, no hair, no particles,
// no custom properties, and a blocking job.
func DefaultOptions() dumpviz.BakeOptions {
	return dumpviz.BakeOptions{GlobalScale: 1.0}
}

// Driver exports over the current timeline range.
type Driver struct {
	Exporter dumpviz.Exporter
	Timeline dumpviz.Timeline
	Log      zerolog.Logger
}

// Request builds the export request for carrier: the whole timeline range, one frame every step.
func (D Driver) Request(path string, carrier dumpviz.Object, step int) dumpviz.ExportRequest {
	start, end := D.Timeline.Range()
	return dumpviz.ExportRequest{
		Path:    path,
		Start:   start,
		End:     end,
		Step:    max(step, 1),
		Objects: []dumpviz.Object{carrier},
		Options: DefaultOptions(),
	}
}

// Export bakes carrier to path and blocks until the exporter is done. A missing carrier, path
// or exporter is a *dumpviz.PreconditionError, and the exporter is not called.
func (D Driver) Export(ctx context.Context, path string, carrier dumpviz.Object, step int) error {
	const action = "export"
	switch {
	case carrier == nil:
		return dumpviz.NewPreconditionError(action, "no dump loaded")
	case path == "":
		return dumpviz.NewPreconditionError(action, "no output path")
	case D.Exporter == nil:
		return dumpviz.NewPreconditionError(action, "no exporter available")
	case D.Timeline == nil:
		return dumpviz.NewPreconditionError(action, "no timeline")
	}
	req := D.Request(path, carrier, step)
	D.Log.Debug().Str("path", path).Int("start", req.Start).Int("end", req.End).Int("step", req.Step).Msg("exporting")
	t0 := time.Now()
	if err := D.Exporter.Export(ctx, req); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	D.Log.Info().Str("path", path).Int("frames", len(req.Frames())).Dur("took", time.Since(t0)).Msg("export saved")
	return nil
}
