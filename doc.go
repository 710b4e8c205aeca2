/*
 * doc.go, part of dumpviz.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package dumpviz is the main package of the dumpviz library. It provides the trajectory
model shared by all the other packages, and the interfaces through which the library drives a
host 3D application.

	**dumpviz Capabilities**

    Reads LAMMPS/OVITO text dump files, plain or compressed (traj/lammps),
	with either x y z or scaled xs ys zs columns (orthogonal boxes only).

    Keeps the whole trajectory in memory, indexed by timestep, with an
	ascending list of timesteps that defines the playback order.

    Plays the trajectory back on a host timeline by moving the vertices of a single
	point "carrier" object on every frame change (session). When two consecutive
	frames have the same number of particles, the vertices are moved in place.

    Builds a procedural instancing graph that places a scaled copy of a prototype
	object on every carrier point (instancing).

    Bakes the animated carrier to an interchange file (export, export/sqlbake).

    Plots a summary of a trajectory (trajplot).

dumpviz does not know the host. Everything the host offers (objects, meshes, modifier
stacks, node trees, the timeline and its exporter) is reached through the interfaces in
this package. The memhost package is an in-memory implementation of all of them.

Coordinates are kept in v3.Matrix values (package v3), one row per particle.*/
package dumpviz
