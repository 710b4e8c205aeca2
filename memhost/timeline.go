/*
 * timeline.go, part of dumpviz.
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

package memhost

import (
	"fmt"
	"slices"

	"github.com/rmera/dumpviz"
)

type handler struct {
	sub dumpviz.Subscription
	f   func(int)
}

// Timeline dispatches frame changes to its subscribers synchronously, in
// subscription order, like a host main loop would.
type Timeline struct {
	current    int
	start, end int
	handlers   []handler
}

// NewTimeline returns a timeline spanning [1,250], at frame 1.
func NewTimeline() *Timeline {
	return &Timeline{current: 1, start: 1, end: 250}
}

func (T *Timeline) Current() int { return T.current }

func (T *Timeline) SetCurrent(frame int) {
	T.current = frame
	//a handler may unsubscribe itself.
	for _, h := range slices.Clone(T.handlers) {
		h.f(frame)
	}
}

func (T *Timeline) SetRange(start, end int) {
	T.start, T.end = start, end
}

func (T *Timeline) Range() (int, int) { return T.start, T.end }

func (T *Timeline) Subscribe(f func(frame int)) dumpviz.Subscription {
	s := dumpviz.NewSubscription()
	T.handlers = append(T.handlers, handler{sub: s, f: f})
	return s
}

func (T *Timeline) Unsubscribe(s dumpviz.Subscription) error {
	for i, h := range T.handlers {
		if h.sub == s {
			T.handlers = append(T.handlers[:i], T.handlers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memhost: unknown subscription %s", s)
}

// Subscribers returns the number of registered handlers.
func (T *Timeline) Subscribers() int { return len(T.handlers) }

// Play moves the timeline through every frame of its range, in order.
func (T *Timeline) Play() {
	for f := T.start; f <= T.end; f++ {
		T.SetCurrent(f)
	}
}
