/*
 * models.go, part of dumpviz.
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

package sqlbake

import (
	"time"

	"gorm.io/datatypes"
)

// Bake is one export run. Its ID is derived from the request, so exporting the same
// range of the same objects to the same path gives the same ID.
type Bake struct {
	ID        string `gorm:"primaryKey;size:36"`
	Path      string `gorm:"size:512"`
	Start     int
	End       int
	Step      int
	Objects   datatypes.JSON //object names, in request order
	Options   datatypes.JSON
	CreatedAt time.Time
}

// Frame is the evaluated geometry of one object at one timeline position.
type Frame struct {
	ID       uint   `gorm:"primaryKey"`
	BakeID   string `gorm:"size:36;index:idx_frame_bake_pos"`
	Position int    `gorm:"index:idx_frame_bake_pos"`
	Object   string `gorm:"size:127"`
	Vertices int
	Box      datatypes.JSON //[[xlo,xhi],[ylo,yhi],[zlo,zhi]] or null
}

// Vertex is one vertex of a baked frame.
type Vertex struct {
	ID      uint `gorm:"primaryKey"`
	FrameID uint `gorm:"index"`
	Atom    int
	X       float64
	Y       float64
	Z       float64
}

// Models lists every table the exporter writes, in migration order.
var Models = []any{&Bake{}, &Frame{}, &Vertex{}}
