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

/*Package lammps reads LAMMPS/OVITO text dump files into a dumpviz.Trajectory.

Each frame in a dump file is a sequence of records, in this fixed order:

	ITEM: TIMESTEP
	100
	ITEM: NUMBER OF ATOMS
	2
	ITEM: BOX BOUNDS pp pp pp
	0.0 10.0
	0.0 10.0
	0.0 10.0
	ITEM: ATOMS id type x y z
	1 1 0.0 0.0 0.0
	2 1 1.0 1.0 1.0

Positions are taken from the x y z columns or, if all three are present, from the scaled
xs ys zs columns, which are turned into cartesian coordinates with the box bounds.
Only orthogonal boxes are supported. If a BOX BOUNDS line carries tilt factors, they are
ignored, which gives wrong coordinates for scaled columns. Lines outside of a frame are skipped.

The whole file is read into memory before parsing, so this package is not meant for
multi-gigabyte dumps. Files ending in .gz or .zst are decompressed on the fly.
*/
package lammps
