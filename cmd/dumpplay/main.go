/*
 * main.go, part of dumpviz.
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

// dumpplay loads a dump file into an in-memory scene, plays it through the whole timeline,
// and optionally bakes it and plots a summary of it.
//
//	dumpplay [-config dir] [-dump file] [-export file.db] [-plot file.png]
//
// Flags override the matching configuration values.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/config"
	"github.com/rmera/dumpviz/export/sqlbake"
	"github.com/rmera/dumpviz/logging"
	"github.com/rmera/dumpviz/memhost"
	"github.com/rmera/dumpviz/session"
	"github.com/rmera/dumpviz/trajplot"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code, so deferred cleanups run before the process exits.
func realMain() int {
	configDir := flag.String("config", ".", "directory holding dumpviz.json")
	dump := flag.String("dump", "", "dump file to load (overrides dumpPath)")
	exportPath := flag.String("export", "", "bake the played trajectory to this file (overrides export.path)")
	plotPath := flag.String("plot", "", "save an RMS displacement plot to this PNG file (overrides plot.path)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *dump != "" {
		cfg.DumpPath = *dump
	}
	if *exportPath != "" {
		cfg.Export.Path = *exportPath
	}
	if *plotPath != "" {
		cfg.Plot.Path = *plotPath
	}

	lc := logging.Config{Level: cfg.LogLevel, LogsDir: cfg.LogsDir}
	if cfg.Graylog.Enabled {
		lc.GraylogAddress = cfg.Graylog.Address
	}
	log, closer, err := logging.Setup(lc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("dumpplay failed")
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Settings, log zerolog.Logger) error {
	scene := memhost.NewScene()
	timeline := memhost.NewTimeline()

	settings := session.Settings{
		AtomScale:    cfg.AtomScale,
		Start:        cfg.StartFrame,
		Step:         cfg.Step,
		LivePlayback: cfg.LivePlayback,
	}
	if cfg.Prototype != "" {
		settings.Prototype = scene.NewPointObject(cfg.Prototype)
	}
	bake := &sqlbake.Exporter{Timeline: timeline, DSN: cfg.Export.DSN, Log: log}
	s, err := session.New(scene, timeline,
		session.WithLogger(log),
		session.WithSettings(settings),
		session.WithExporter(bake),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Teardown(); err != nil {
			log.Warn().Err(err).Msg("session teardown")
		}
	}()
	bake.BoxAt = s.BoxAt

	rep, err := s.Load(cfg.DumpPath)
	if err != nil {
		return err
	}
	log.Info().Int("atoms", rep.Atoms).Int("frames", rep.Frames).Int("start", rep.Start).Int("end", rep.End).Msg("playing")
	timeline.Play()

	if cfg.Export.Path != "" {
		if err := s.Export(ctx, cfg.Export.Path); err != nil {
			return err
		}
	}
	if cfg.Plot.Path != "" {
		if err := trajplot.Plot(s.Trajectory(), s.Trajectory().FileName(), cfg.Plot.Path); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
		log.Info().Str("path", cfg.Plot.Path).Msg("plot saved")
		logDisplacements(s.Trajectory(), log)
	}
	return nil
}

// logDisplacements logs how far the particles of the last frame moved from the first one.
func logDisplacements(traj *dumpviz.Trajectory, log zerolog.Logger) {
	d, err := trajplot.Displacements(traj, traj.Len()-1)
	if err == nil && len(d) == 0 {
		err = errors.New("no particles")
	}
	if err != nil {
		log.Debug().Err(err).Msg("no displacement histogram")
		return
	}
	h, err := trajplot.NewHistogram(trajplot.EvenDividers(0, floats.Max(d)+1e-9, 10), d)
	if err != nil {
		log.Debug().Err(err).Msg("no displacement histogram")
		return
	}
	h.Normalize()
	log.Info().Floats64("dividers", h.Dividers()).Floats64("fractions", h.Counts()).Msg("last frame displacements")
}
