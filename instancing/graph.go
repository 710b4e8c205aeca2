/*
 * graph.go, part of dumpviz.
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

//Package instancing builds the procedural graph that places one scaled copy of a prototype
//object on every point of a carrier object, and keeps its scale in sync afterwards.
//
//The graph is:
//
//	GroupInput.Geometry -> MeshToPoints -> InstanceOnPoints.Points
//	ObjectInfo(prototype) -> Transform(Scale=s,s,s) -> InstanceOnPoints.Instance
//	InstanceOnPoints.Instances -> GroupOutput.Geometry
//
//The scale is a float group input of the tree, exposed as a modifier parameter. It is set
//directly on every change, there are no expressions evaluated by the host.
package instancing

import (
	"fmt"

	"github.com/rmera/dumpviz"
)

// ScaleParam is the name of the group input holding the uniform instance scale.
const ScaleParam = "AtomScale"

const geometry = "Geometry"

// Graph is a built instancing graph, attached to an object through a NODES modifier.
type Graph struct {
	Object    dumpviz.Object
	Tree      dumpviz.NodeTree
	Modifier  dumpviz.Modifier
	transform dumpviz.Node
}

// Build creates, or refreshes, the node tree called name and the modifier of the same name on obj,
// so obj shows proto instanced on each of its points, scaled by scale. The tree is cleared and wired
// again on every call, so building twice gives the same graph. The legacy vertex-duplication display
// of obj is turned off.
func Build(scene dumpviz.Scene, obj, proto dumpviz.Object, scale float64, name string) (*Graph, error) {
	if obj == nil {
		return nil, dumpviz.NewPreconditionError("build instancing graph", "no carrier object")
	}
	if proto == nil {
		return nil, dumpviz.NewPreconditionError("build instancing graph", "no prototype object")
	}
	if scale < 0 {
		return nil, dumpviz.NewPreconditionError("build instancing graph", fmt.Sprintf("negative scale %g", scale))
	}
	tree, ok := scene.NodeTree(name)
	if !ok {
		tree = scene.NewNodeTree(name)
	}
	tree.Clear()
	if err := sockets(tree); err != nil {
		return nil, fmt.Errorf("instancing: %w", err)
	}
	if err := tree.SetInputDefault(ScaleParam, scale); err != nil {
		return nil, fmt.Errorf("instancing: %w", err)
	}
	transform, err := wire(tree, proto, scale)
	if err != nil {
		return nil, fmt.Errorf("instancing: wiring %q: %w", name, err)
	}

	mods := obj.Modifiers()
	mod, ok := mods.Get(name)
	if ok && mod.Kind() != dumpviz.NodesModifier {
		if err := mods.Remove(name); err != nil {
			return nil, fmt.Errorf("instancing: replacing modifier %q: %w", name, err)
		}
		ok = false
	}
	if !ok {
		mod = mods.New(name, dumpviz.NodesModifier)
	}
	mod.SetNodeTree(tree)
	g := &Graph{Object: obj, Tree: tree, Modifier: mod, transform: transform}
	if err := g.setParam(scale); err != nil {
		return nil, err
	}
	obj.SetDupliVerts(false)
	return g, nil
}

func sockets(tree dumpviz.NodeTree) error {
	if !tree.HasInput(geometry) {
		if err := tree.NewInput(dumpviz.GeometrySocket, geometry); err != nil {
			return err
		}
	}
	if !tree.HasInput(ScaleParam) {
		if err := tree.NewInput(dumpviz.FloatSocket, ScaleParam); err != nil {
			return err
		}
	}
	if !tree.HasOutput(geometry) {
		return tree.NewOutput(dumpviz.GeometrySocket, geometry)
	}
	return nil
}

// wire adds the nodes and links to an empty tree. It returns the Transform node.
func wire(tree dumpviz.NodeTree, proto dumpviz.Object, scale float64) (dumpviz.Node, error) {
	in := tree.AddNode(dumpviz.GroupInputNode)
	out := tree.AddNode(dumpviz.GroupOutputNode)
	m2p := tree.AddNode(dumpviz.MeshToPointsNode)
	iop := tree.AddNode(dumpviz.InstanceOnPointNode)
	info := tree.AddNode(dumpviz.ObjectInfoNode)
	transform := tree.AddNode(dumpviz.TransformNode)

	inputs := []struct {
		node  dumpviz.Node
		name  string
		value any
	}{
		{m2p, "Radius", 0.0},
		{info, "Object", proto},
		{info, "As Instance", true},
		{transform, "Scale", [3]float64{scale, scale, scale}},
	}
	for _, v := range inputs {
		if err := v.node.SetInput(v.name, v.value); err != nil {
			return nil, err
		}
	}
	links := []dumpviz.Link{
		{From: in, Output: geometry, To: m2p, Input: "Mesh"},
		{From: m2p, Output: "Points", To: iop, Input: "Points"},
		{From: info, Output: geometry, To: transform, Input: geometry},
		{From: transform, Output: geometry, To: iop, Input: "Instance"},
		{From: iop, Output: "Instances", To: out, Input: geometry},
	}
	for _, l := range links {
		if err := tree.Link(l.From, l.Output, l.To, l.Input); err != nil {
			return nil, err
		}
	}
	return transform, nil
}

// Find returns the graph previously built on obj under name. It returns a *dumpviz.PreconditionError
// if there is no such graph.
func Find(obj dumpviz.Object, name string) (*Graph, error) {
	const action = "find instancing graph"
	if obj == nil {
		return nil, dumpviz.NewPreconditionError(action, "no carrier object")
	}
	mod, ok := obj.Modifiers().Get(name)
	if !ok || mod.Kind() != dumpviz.NodesModifier || mod.NodeTree() == nil {
		return nil, dumpviz.NewPreconditionError(action, fmt.Sprintf("%s has no %q modifier", obj.Name(), name))
	}
	g := &Graph{Object: obj, Tree: mod.NodeTree(), Modifier: mod}
	for _, n := range g.Tree.Nodes() {
		if n.Kind() == dumpviz.TransformNode {
			g.transform = n
			break
		}
	}
	if g.transform == nil {
		return nil, dumpviz.NewPreconditionError(action, fmt.Sprintf("node tree %q has no Transform node", g.Tree.Name()))
	}
	return g, nil
}

// Scale returns the current scale parameter of the graph.
func (G *Graph) Scale() (float64, bool) {
	return G.Modifier.Param(ScaleParam)
}

// SetScale updates the scale of the graph in place: the group input default, the modifier
// parameter and the Transform node. Nothing is rebuilt.
func (G *Graph) SetScale(s float64) error {
	if s < 0 {
		return dumpviz.NewPreconditionError("apply scale", fmt.Sprintf("negative scale %g", s))
	}
	if G.transform == nil {
		return dumpviz.NewPreconditionError("apply scale", "the graph has no Transform node")
	}
	if !G.Modifier.HasParam(ScaleParam) {
		return dumpviz.NewPreconditionError("apply scale", fmt.Sprintf("modifier %q exposes no %s input", G.Modifier.Name(), ScaleParam))
	}
	if err := G.Tree.SetInputDefault(ScaleParam, s); err != nil {
		return fmt.Errorf("instancing: %w", err)
	}
	if err := G.transform.SetInput("Scale", [3]float64{s, s, s}); err != nil {
		return fmt.Errorf("instancing: %w", err)
	}
	return G.setParam(s)
}

func (G *Graph) setParam(s float64) error {
	if !G.Modifier.HasParam(ScaleParam) {
		return dumpviz.NewPreconditionError("set atom scale", fmt.Sprintf("modifier %q exposes no %s input", G.Modifier.Name(), ScaleParam))
	}
	return G.Modifier.SetParam(ScaleParam, s)
}

// OrderModifiers moves any MESH_CACHE modifier of obj above the named instancing modifier,
// and the instancing modifier to the end of the stack.
func OrderModifiers(obj dumpviz.Object, name string) error {
	mods := obj.Modifiers()
	if mods.Index(name) < 0 {
		return dumpviz.NewPreconditionError("order modifiers", fmt.Sprintf("%s has no %q modifier", obj.Name(), name))
	}
	for i := 0; i < mods.Len(); i++ {
		m := mods.At(i)
		if m.Kind() != dumpviz.MeshCacheModifier {
			continue
		}
		for mods.Index(m.Name()) > mods.Index(name) {
			if err := mods.MoveUp(m.Name()); err != nil {
				return fmt.Errorf("instancing: %w", err)
			}
		}
	}
	for mods.Index(name) < mods.Len()-1 {
		if err := mods.MoveDown(name); err != nil {
			return fmt.Errorf("instancing: %w", err)
		}
	}
	return nil
}
