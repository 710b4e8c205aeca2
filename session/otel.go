/*
 * otel.go, part of dumpviz.
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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/rmera/dumpviz/session"

// meter uses the global provider, a no-op unless the program installs one.
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Tick outcomes. The options are built once so counting a tick does not allocate.
var (
	tickFast    = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "fast")))
	tickRebuild = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "rebuild")))
	tickNoop    = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "noop")))
)
