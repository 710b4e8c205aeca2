/*
 * logging.go, part of dumpviz.
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

//Package logging builds the zerolog logger used by the dumpviz programs.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Config selects where logs go.
type Config struct {
	Level string
	//Out gets the console-formatted log. Defaults to os.Stdout.
	Out io.Writer
	//LogsDir, if set, also gets a plain-text log file, one per run.
	LogsDir string
	//GraylogAddress, if set, gets every entry as a GELF message.
	GraylogAddress string
}

// ParseLevel maps debug, info, warn, error and trace, in any case, to their zerolog level.
// Anything else is info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogFilePath returns the log file for a run started at t.
func LogFilePath(dir string, t time.Time) string {
	return filepath.Join(dir, "dumpviz."+t.UTC().Format("20060102_150405")+".log")
}

type closers []io.Closer

func (C closers) Close() error {
	var errs []error
	for _, c := range C {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Setup returns a logger writing to every destination in cfg, with UTC timestamps. The
// returned closer releases the log file and the GELF connection.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}}
	var cl closers
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("logging: %w", err)
		}
		f, err := os.Create(LogFilePath(cfg.LogsDir, time.Now()))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("logging: %w", err)
		}
		cl = append(cl, f)
		writers = append(writers, zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true})
	}
	if cfg.GraylogAddress != "" {
		g, err := gelf.NewWriter(cfg.GraylogAddress)
		if err != nil {
			cl.Close()
			return zerolog.Nop(), nil, fmt.Errorf("logging: graylog at %s: %w", cfg.GraylogAddress, err)
		}
		cl = append(cl, g)
		writers = append(writers, g)
	}
	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
	l.Debug().Str("loglevel", l.GetLevel().String()).Msg("logging set up")
	return l, cl, nil
}
