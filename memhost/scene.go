/*
 * scene.go, part of dumpviz.
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

//Package memhost is an in-memory host for dumpviz. It implements every host interface
//of the dumpviz package, keeping just enough state to check what the library did to it.
//It is used by the tests of the other packages and by cmd/dumpplay.
package memhost

import (
	"fmt"

	"github.com/rmera/dumpviz"
	v3 "github.com/rmera/dumpviz/v3"
)

// Scene holds objects and node trees by name.
type Scene struct {
	objects map[string]*Object
	trees   map[string]*NodeTree
}

func NewScene() *Scene {
	return &Scene{objects: make(map[string]*Object), trees: make(map[string]*NodeTree)}
}

func (S *Scene) Object(name string) (dumpviz.Object, bool) {
	o, ok := S.objects[name]
	if !ok {
		return nil, false
	}
	return o, true
}

// NewPointObject creates an object with an empty mesh. If an object with that name
// exists, the new one gets a ".001"-style suffix, as hosts usually do.
func (S *Scene) NewPointObject(name string) dumpviz.Object {
	n := name
	for i := 1; ; i++ {
		if _, ok := S.objects[n]; !ok {
			break
		}
		n = fmt.Sprintf("%s.%03d", name, i)
	}
	o := &Object{name: n, mesh: &Mesh{}, mods: &Modifiers{}}
	S.objects[n] = o
	return o
}

func (S *Scene) NodeTree(name string) (dumpviz.NodeTree, bool) {
	t, ok := S.trees[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (S *Scene) NewNodeTree(name string) dumpviz.NodeTree {
	t := &NodeTree{name: name, defaults: make(map[string]float64)}
	S.trees[name] = t
	return t
}

// NObjects returns the number of objects in the scene.
func (S *Scene) NObjects() int {
	return len(S.objects)
}

// Object is a scene object with a point mesh.
type Object struct {
	name  string
	mesh  *Mesh
	mods  *Modifiers
	dupli bool
}

func (O *Object) Name() string                 { return O.name }
func (O *Object) Mesh() dumpviz.Mesh           { return O.mesh }
func (O *Object) Modifiers() dumpviz.Modifiers { return O.mods }
func (O *Object) DupliVerts() bool             { return O.dupli }
func (O *Object) SetDupliVerts(on bool)        { O.dupli = on }

// PointMesh returns the concrete mesh, for inspection.
func (O *Object) PointMesh() *Mesh { return O.mesh }

func (O *Object) String() string { return "memhost.Object(" + O.name + ")" }

// Mesh is a point mesh. It counts rebuilds and updates, and keeps a per-vertex tag
// that, like host vertex groups, only survives in-place moves.
type Mesh struct {
	coords   *v3.Matrix
	Rebuilds int
	Updates  int
	tags     map[int]string
}

func (M *Mesh) Len() int {
	return M.coords.NVecs()
}

func (M *Mesh) SetVec(i int, x, y, z float64) {
	M.coords.SetVec(i, x, y, z)
}

func (M *Mesh) Vec(i int) [3]float64 {
	return M.coords.Vec(i)
}

// Rebuild replaces the geometry with a copy of coords. Vertex tags are lost.
func (M *Mesh) Rebuild(coords *v3.Matrix) {
	M.coords = coords.Clone()
	M.tags = nil
	M.Rebuilds++
}

func (M *Mesh) Update() {
	M.Updates++
}

// Coords returns a copy of the current vertex positions.
func (M *Mesh) Coords() *v3.Matrix {
	return M.coords.Clone()
}

// Tag attaches a label to vertex i.
func (M *Mesh) Tag(i int, label string) {
	if M.tags == nil {
		M.tags = make(map[int]string)
	}
	M.tags[i] = label
}

// TagOf returns the label attached to vertex i, if any.
func (M *Mesh) TagOf(i int) (string, bool) {
	l, ok := M.tags[i]
	return l, ok
}
