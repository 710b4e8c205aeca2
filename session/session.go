/*
 * session.go, part of dumpviz.
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

//Package session holds the state of one playback session: the loaded trajectory, the carrier
//object whose points show the current frame, and the timeline subscription that keeps the
//carrier in sync with the host timeline. All the user actions (load, build, apply scale,
//toggle playback, export) are methods of Session.
//
//A Session is not safe for concurrent use. Like the host it lives in, it expects one event
//at a time.
package session

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/instancing"
)

const (
	//CarrierName is the name of the point object that displays the current frame.
	CarrierName = "AtomInstancer"
	//ModifierName names both the instancing node tree and the modifier that uses it.
	ModifierName = "GN_AtomsInstance"
)

// Settings are the user-editable parameters of a session.
type Settings struct {
	Prototype    dumpviz.Object //nil means no instancing
	AtomScale    float64
	Start        int
	Step         int
	LivePlayback bool
}

// DefaultSettings returns scale 0.2, start 1, step 1 and live playback on.
func DefaultSettings() Settings {
	return Settings{AtomScale: 0.2, Start: 1, Step: 1, LivePlayback: true}
}

// Validate returns a *dumpviz.PreconditionError naming the first invalid field, if any.
func (S Settings) Validate() error {
	switch {
	case S.AtomScale < 0:
		return dumpviz.NewPreconditionError("use settings", fmt.Sprintf("atom scale must be >= 0, got %g", S.AtomScale))
	case S.Start < 1:
		return dumpviz.NewPreconditionError("use settings", fmt.Sprintf("start frame must be >= 1, got %d", S.Start))
	case S.Step < 1:
		return dumpviz.NewPreconditionError("use settings", fmt.Sprintf("step must be >= 1, got %d", S.Step))
	}
	return nil
}

// Session is the state of one playback session. The zero value is not usable, use New.
type Session struct {
	scene    dumpviz.Scene
	timeline dumpviz.Timeline
	exporter dumpviz.Exporter
	log      zerolog.Logger
	settings Settings

	//traj is only ever replaced as a whole, in one assignment.
	traj    *dumpviz.Trajectory
	carrier dumpviz.Object
	graph   *instancing.Graph

	sub        dumpviz.Subscription
	registered bool

	ticks metric.Int64Counter
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(S *Session) { S.log = l }
}

// WithExporter sets the exporter used by Export.
func WithExporter(e dumpviz.Exporter) Option {
	return func(S *Session) { S.exporter = e }
}

// WithSettings replaces the default settings. Invalid settings make New fail.
func WithSettings(s Settings) Option {
	return func(S *Session) { S.settings = s }
}

// New returns a session driving the given scene and timeline. Nothing is created in the scene
// until something is loaded or built.
func New(scene dumpviz.Scene, timeline dumpviz.Timeline, opts ...Option) (*Session, error) {
	if scene == nil || timeline == nil {
		return nil, errors.New("session: a scene and a timeline are required")
	}
	S := &Session{
		scene:    scene,
		timeline: timeline,
		log:      zerolog.Nop(),
		settings: DefaultSettings(),
	}
	for _, o := range opts {
		o(S)
	}
	if err := S.settings.Validate(); err != nil {
		return nil, err
	}
	var err error
	S.ticks, err = meter().Int64Counter(
		"dumpviz.playback.ticks",
		metric.WithDescription("Timeline ticks handled, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("session: creating tick counter: %w", err)
	}
	return S, nil
}

func (S *Session) Settings() Settings { return S.settings }

// SetSettings replaces the settings. Invalid settings are rejected and the old ones kept.
// The new settings take effect on the next action, or tick.
func (S *Session) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return S.warn(err)
	}
	S.settings = s
	return nil
}

// Trajectory returns the loaded trajectory, or nil.
func (S *Session) Trajectory() *dumpviz.Trajectory { return S.traj }

// Carrier returns the carrier object, or nil if none has been created yet.
func (S *Session) Carrier() dumpviz.Object { return S.carrier }

// Graph returns the instancing graph, or nil if none has been built.
func (S *Session) Graph() *instancing.Graph { return S.graph }

// Registered reports whether the playback handler is subscribed to the timeline.
func (S *Session) Registered() bool { return S.registered }

// carrierObject returns the carrier, creating it, or adopting an existing object with its name,
// the first time.
func (S *Session) carrierObject() dumpviz.Object {
	if S.carrier != nil {
		return S.carrier
	}
	if o, ok := S.scene.Object(CarrierName); ok {
		S.carrier = o
	} else {
		S.carrier = S.scene.NewPointObject(CarrierName)
	}
	return S.carrier
}

// warn logs precondition failures as warnings, and returns err.
func (S *Session) warn(err error) error {
	if dumpviz.IsPrecondition(err) {
		S.log.Warn().Err(err).Msg("action cancelled")
	}
	return err
}

// Teardown unsubscribes the playback handler and forgets the trajectory, carrier and graph.
// The host objects themselves are left in the scene, and the settings are kept.
func (S *Session) Teardown() error {
	err := S.unsubscribe()
	S.traj = nil
	S.carrier = nil
	S.graph = nil
	S.log.Debug().Msg("session torn down")
	return err
}
