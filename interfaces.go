/*
 * interfaces.go, part of dumpviz.
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

package dumpviz

import (
	"context"

	"github.com/google/uuid"
	v3 "github.com/rmera/dumpviz/v3"
)

//The host is never touched directly. The interfaces below are the smallest set of the host's
//object/modifier/node-tree API that the library needs. memhost implements all of them.

// Mesh is the vertex buffer of a point-geometry object.
type Mesh interface {
	//Len returns the current number of vertices.
	Len() int

	//SetVec moves the vertex i to (x,y,z). It does not change the topology.
	SetVec(i int, x, y, z float64)

	//Vec returns the position of vertex i.
	Vec(i int) [3]float64

	//Rebuild discards the current geometry and builds a new one, one vertex per
	//vector in coords.
	Rebuild(coords *v3.Matrix)

	//Update marks the geometry as dirty, so the host re-evaluates it.
	Update()
}

// ModifierKind identifies the type of a modifier slot.
type ModifierKind string

const (
	NodesModifier     ModifierKind = "NODES"
	MeshCacheModifier ModifierKind = "MESH_CACHE"
)

// Modifier is a named slot in the evaluation stack of an object.
type Modifier interface {
	Name() string
	Kind() ModifierKind

	//NodeTree returns the procedural graph attached to the slot, or nil.
	NodeTree() NodeTree
	SetNodeTree(NodeTree)

	//HasParam reports whether the slot exposes a per-object value for the given group
	//input of its node tree.
	HasParam(name string) bool
	SetParam(name string, value float64) error
	Param(name string) (float64, bool)
}

// Modifiers is the ordered modifier stack of an object. Index 0 is evaluated first.
type Modifiers interface {
	Get(name string) (Modifier, bool)
	New(name string, kind ModifierKind) Modifier
	//Index returns the position of the named modifier, or -1.
	Index(name string) int
	Len() int
	At(i int) Modifier
	MoveUp(name string) error
	MoveDown(name string) error
	Remove(name string) error
}

// Object is a scene object.
type Object interface {
	Name() string
	Mesh() Mesh
	Modifiers() Modifiers

	//DupliVerts reports whether the legacy "instance on vertices" display mode is on.
	DupliVerts() bool
	SetDupliVerts(on bool)
}

// SocketKind is the data type of a node tree interface socket.
type SocketKind string

const (
	GeometrySocket SocketKind = "NodeSocketGeometry"
	FloatSocket    SocketKind = "NodeSocketFloat"
)

// NodeKind is the type of a node in a procedural graph.
type NodeKind string

const (
	GroupInputNode      NodeKind = "NodeGroupInput"
	GroupOutputNode     NodeKind = "NodeGroupOutput"
	MeshToPointsNode    NodeKind = "GeometryNodeMeshToPoints"
	InstanceOnPointNode NodeKind = "GeometryNodeInstanceOnPoints"
	ObjectInfoNode      NodeKind = "GeometryNodeObjectInfo"
	TransformNode       NodeKind = "GeometryNodeTransform"
)

// Node is one node of a procedural graph. Input values are float64, [3]float64,
// bool or Object, depending on the socket.
type Node interface {
	Kind() NodeKind
	SetInput(name string, value any) error
	Input(name string) (any, bool)
}

// Link connects the output socket of a node to the input socket of another.
type Link struct {
	From   Node
	Output string
	To     Node
	Input  string
}

// NodeTree is a named procedural geometry graph.
type NodeTree interface {
	Name() string

	//Clear removes all nodes and links. Interface sockets are kept.
	Clear()

	HasInput(name string) bool
	HasOutput(name string) bool
	NewInput(kind SocketKind, name string) error
	NewOutput(kind SocketKind, name string) error
	//InputNames returns the group input names in order.
	InputNames() []string

	//SetInputDefault sets the default value of a float group input.
	SetInputDefault(name string, value float64) error
	InputDefault(name string) (float64, bool)

	AddNode(kind NodeKind) Node
	Nodes() []Node
	Link(from Node, output string, to Node, input string) error
	Links() []Link
}

// Scene gives access to the host objects and node trees by name.
type Scene interface {
	Object(name string) (Object, bool)
	//NewPointObject creates an object with an empty point mesh and links it to the scene.
	NewPointObject(name string) Object
	NodeTree(name string) (NodeTree, bool)
	NewNodeTree(name string) NodeTree
}

// Subscription is the capability token returned when a handler is subscribed to the timeline.
// It is the only way of unsubscribing the handler.
type Subscription struct {
	id uuid.UUID
}

// NewSubscription returns a new, unique, token.
func NewSubscription() Subscription {
	return Subscription{id: uuid.New()}
}

// Valid is false for the zero Subscription.
func (S Subscription) Valid() bool {
	return S.id != uuid.Nil
}

func (S Subscription) String() string {
	return S.id.String()
}

// Timeline is the host animation timeline.
type Timeline interface {
	Current() int
	//SetCurrent moves the timeline to frame and notifies the subscribers.
	SetCurrent(frame int)
	SetRange(start, end int)
	Range() (start, end int)

	//Subscribe registers f to be called, synchronously, every time the timeline
	//advances, with the new timeline position.
	Subscribe(f func(frame int)) Subscription
	//Unsubscribe removes the handler registered with s. Unknown tokens are an error.
	Unsubscribe(s Subscription) error
}

// BakeOptions is the set of baking options passed to the host exporter.
type BakeOptions struct {
	GlobalScale       float64
	SelectedOnly      bool
	VisibleOnly       bool
	Flatten           bool
	SubdivSchema      bool
	Hair              bool
	Particles         bool
	CustomProperties  bool
	AsBackgroundJob   bool
	EvaluateModifiers bool
}

// ExportRequest describes one export: the frames Start, Start+Step, ... up to End, inclusive.
type ExportRequest struct {
	Path    string
	Start   int
	End     int
	Step    int
	Objects []Object
	Options BakeOptions
}

// Frames returns the timeline positions covered by the request, in order.
func (R ExportRequest) Frames() []int {
	step := R.Step
	if step < 1 {
		step = 1
	}
	if R.End < R.Start {
		return nil
	}
	ret := make([]int, 0, (R.End-R.Start)/step+1)
	for f := R.Start; f <= R.End; f += step {
		ret = append(ret, f)
	}
	return ret
}

// Exporter is the host's synchronous animation exporter.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) error
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice after the call. An empty string adds nothing.
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
}
