/*
 * config.go, part of dumpviz.
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

//Package config reads the user settings from an optional dumpviz.json file and from
//DUMPVIZ_* environment variables, over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rmera/dumpviz"
)

// FileName is the configuration file looked for, without extension.
const FileName = "dumpviz"

// GraylogConfig holds the GELF log shipping settings.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// ExportConfig holds the bake output settings. An empty DSN means a SQLite file at Path.
type ExportConfig struct {
	Path string `json:"path" mapstructure:"path"`
	DSN  string `json:"dsn" mapstructure:"dsn"`
}

// PlotConfig holds the trajectory summary plot settings.
type PlotConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// Settings is the whole configuration.
type Settings struct {
	DumpPath     string        `json:"dumpPath" mapstructure:"dumpPath"`
	Prototype    string        `json:"prototype" mapstructure:"prototype"`
	AtomScale    float64       `json:"atomScale" mapstructure:"atomScale"`
	StartFrame   int           `json:"startFrame" mapstructure:"startFrame"`
	Step         int           `json:"step" mapstructure:"step"`
	LivePlayback bool          `json:"livePlayback" mapstructure:"livePlayback"`
	LogLevel     string        `json:"logLevel" mapstructure:"logLevel"`
	LogsDir      string        `json:"logsDir" mapstructure:"logsDir"`
	Graylog      GraylogConfig `json:"graylog" mapstructure:"graylog"`
	Export       ExportConfig  `json:"export" mapstructure:"export"`
	Plot         PlotConfig    `json:"plot" mapstructure:"plot"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dumpPath", "")
	v.SetDefault("prototype", "")
	v.SetDefault("atomScale", 0.2)
	v.SetDefault("startFrame", 1)
	v.SetDefault("step", 1)
	v.SetDefault("livePlayback", true)

	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "")

	v.SetDefault("graylog.enabled", false)
	v.SetDefault("graylog.address", "localhost:12201")

	v.SetDefault("export.path", "")
	v.SetDefault("export.dsn", "")
	v.SetDefault("plot.path", "")
}

// Load reads dumpviz.json from configDir, if there is one, and the environment. A missing
// file is not an error, the defaults are used. The returned settings are validated.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.SetEnvPrefix("DUMPVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("config: reading %s.json: %w", FileName, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate returns a *dumpviz.PreconditionError naming the first out-of-range value.
func (S Settings) Validate() error {
	switch {
	case S.AtomScale < 0:
		return dumpviz.NewPreconditionError("load configuration", fmt.Sprintf("atomScale must be >= 0, got %g", S.AtomScale))
	case S.StartFrame < 1:
		return dumpviz.NewPreconditionError("load configuration", fmt.Sprintf("startFrame must be >= 1, got %d", S.StartFrame))
	case S.Step < 1:
		return dumpviz.NewPreconditionError("load configuration", fmt.Sprintf("step must be >= 1, got %d", S.Step))
	}
	return nil
}
