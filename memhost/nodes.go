/*
 * nodes.go, part of dumpviz.
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

// Modifiers is an ordered modifier stack.
type Modifiers struct {
	list []*Modifier
}

func (M *Modifiers) Get(name string) (dumpviz.Modifier, bool) {
	i := M.Index(name)
	if i < 0 {
		return nil, false
	}
	return M.list[i], true
}

// New appends a modifier at the end of the stack.
func (M *Modifiers) New(name string, kind dumpviz.ModifierKind) dumpviz.Modifier {
	m := &Modifier{name: name, kind: kind, params: make(map[string]float64)}
	M.list = append(M.list, m)
	return m
}

func (M *Modifiers) Index(name string) int {
	for i, m := range M.list {
		if m.name == name {
			return i
		}
	}
	return -1
}

func (M *Modifiers) Len() int { return len(M.list) }

func (M *Modifiers) At(i int) dumpviz.Modifier { return M.list[i] }

// MoveUp swaps the named modifier with the one before it. Moving the first one is a no-op.
func (M *Modifiers) MoveUp(name string) error {
	i := M.Index(name)
	if i < 0 {
		return fmt.Errorf("memhost: no modifier %q", name)
	}
	if i > 0 {
		M.list[i-1], M.list[i] = M.list[i], M.list[i-1]
	}
	return nil
}

// MoveDown swaps the named modifier with the one after it. Moving the last one is a no-op.
func (M *Modifiers) MoveDown(name string) error {
	i := M.Index(name)
	if i < 0 {
		return fmt.Errorf("memhost: no modifier %q", name)
	}
	if i < len(M.list)-1 {
		M.list[i+1], M.list[i] = M.list[i], M.list[i+1]
	}
	return nil
}

// Remove deletes the first modifier called name from the stack.
func (M *Modifiers) Remove(name string) error {
	i := M.Index(name)
	if i < 0 {
		return fmt.Errorf("memhost: no modifier %q", name)
	}
	M.list = slices.Delete(M.list, i, i+1)
	return nil
}

// Names returns the modifier names in evaluation order.
func (M *Modifiers) Names() []string {
	ret := make([]string, 0, len(M.list))
	for _, m := range M.list {
		ret = append(ret, m.name)
	}
	return ret
}

// Modifier is one slot of the stack. A NODES modifier exposes one parameter per
// float group input of its node tree.
type Modifier struct {
	name   string
	kind   dumpviz.ModifierKind
	tree   dumpviz.NodeTree
	params map[string]float64
}

func (M *Modifier) Name() string                   { return M.name }
func (M *Modifier) Kind() dumpviz.ModifierKind     { return M.kind }
func (M *Modifier) NodeTree() dumpviz.NodeTree     { return M.tree }
func (M *Modifier) SetNodeTree(t dumpviz.NodeTree) { M.tree = t }

func (M *Modifier) HasParam(name string) bool {
	if M.kind != dumpviz.NodesModifier || M.tree == nil {
		return false
	}
	return M.tree.HasInput(name) && name != geometry
}

func (M *Modifier) SetParam(name string, value float64) error {
	if !M.HasParam(name) {
		return fmt.Errorf("memhost: modifier %q has no parameter %q", M.name, name)
	}
	M.params[name] = value
	return nil
}

// Param returns the parameter value. A parameter that was never set has the
// tree default.
func (M *Modifier) Param(name string) (float64, bool) {
	if !M.HasParam(name) {
		return 0, false
	}
	if v, ok := M.params[name]; ok {
		return v, true
	}
	return M.tree.InputDefault(name)
}

const geometry = "Geometry"

type socket struct {
	kind dumpviz.SocketKind
	name string
}

// NodeTree is a procedural graph. Links are checked against the sockets each node kind has.
type NodeTree struct {
	name     string
	inputs   []socket
	outputs  []socket
	defaults map[string]float64
	nodes    []*Node
	links    []dumpviz.Link
}

func (T *NodeTree) Name() string { return T.name }

func (T *NodeTree) Clear() {
	T.nodes = nil
	T.links = nil
}

func hasSocket(list []socket, name string) bool {
	return slices.ContainsFunc(list, func(s socket) bool { return s.name == name })
}

func (T *NodeTree) HasInput(name string) bool  { return hasSocket(T.inputs, name) }
func (T *NodeTree) HasOutput(name string) bool { return hasSocket(T.outputs, name) }

func (T *NodeTree) NewInput(kind dumpviz.SocketKind, name string) error {
	if T.HasInput(name) {
		return fmt.Errorf("memhost: node tree %q already has input %q", T.name, name)
	}
	T.inputs = append(T.inputs, socket{kind, name})
	return nil
}

func (T *NodeTree) NewOutput(kind dumpviz.SocketKind, name string) error {
	if T.HasOutput(name) {
		return fmt.Errorf("memhost: node tree %q already has output %q", T.name, name)
	}
	T.outputs = append(T.outputs, socket{kind, name})
	return nil
}

func (T *NodeTree) InputNames() []string {
	ret := make([]string, 0, len(T.inputs))
	for _, s := range T.inputs {
		ret = append(ret, s.name)
	}
	return ret
}

func (T *NodeTree) SetInputDefault(name string, value float64) error {
	i := slices.IndexFunc(T.inputs, func(s socket) bool { return s.name == name })
	if i < 0 || T.inputs[i].kind != dumpviz.FloatSocket {
		return fmt.Errorf("memhost: node tree %q has no float input %q", T.name, name)
	}
	T.defaults[name] = value
	return nil
}

func (T *NodeTree) InputDefault(name string) (float64, bool) {
	v, ok := T.defaults[name]
	return v, ok
}

func (T *NodeTree) AddNode(kind dumpviz.NodeKind) dumpviz.Node {
	n := &Node{kind: kind, tree: T, values: make(map[string]any)}
	T.nodes = append(T.nodes, n)
	return n
}

func (T *NodeTree) Nodes() []dumpviz.Node {
	ret := make([]dumpviz.Node, 0, len(T.nodes))
	for _, n := range T.nodes {
		ret = append(ret, n)
	}
	return ret
}

func (T *NodeTree) Link(from dumpviz.Node, output string, to dumpviz.Node, input string) error {
	f, ok1 := from.(*Node)
	t, ok2 := to.(*Node)
	if !ok1 || !ok2 || f.tree != T || t.tree != T {
		return fmt.Errorf("memhost: can only link nodes of node tree %q", T.name)
	}
	if !slices.Contains(f.outputNames(), output) {
		return fmt.Errorf("memhost: %s has no output %q", f.kind, output)
	}
	if !slices.Contains(t.inputNames(), input) {
		return fmt.Errorf("memhost: %s has no input %q", t.kind, input)
	}
	T.links = append(T.links, dumpviz.Link{From: from, Output: output, To: to, Input: input})
	return nil
}

func (T *NodeTree) Links() []dumpviz.Link {
	return slices.Clone(T.links)
}

// Node is a node in a NodeTree.
type Node struct {
	kind   dumpviz.NodeKind
	tree   *NodeTree
	values map[string]any
}

var nodeInputs = map[dumpviz.NodeKind][]string{
	dumpviz.MeshToPointsNode:    {"Mesh", "Selection", "Position", "Radius"},
	dumpviz.InstanceOnPointNode: {"Points", "Selection", "Instance", "Rotation", "Scale"},
	dumpviz.ObjectInfoNode:      {"Object", "As Instance"},
	dumpviz.TransformNode:       {"Geometry", "Translation", "Rotation", "Scale"},
}

var nodeOutputs = map[dumpviz.NodeKind][]string{
	dumpviz.MeshToPointsNode:    {"Points"},
	dumpviz.InstanceOnPointNode: {"Instances"},
	dumpviz.ObjectInfoNode:      {"Location", "Rotation", "Scale", "Geometry"},
	dumpviz.TransformNode:       {"Geometry"},
}

// The group input node exposes the tree inputs as outputs, and the group output node
// takes the tree outputs as inputs.
func (N *Node) inputNames() []string {
	if N.kind == dumpviz.GroupOutputNode {
		return socketNames(N.tree.outputs)
	}
	return nodeInputs[N.kind]
}

func (N *Node) outputNames() []string {
	if N.kind == dumpviz.GroupInputNode {
		return socketNames(N.tree.inputs)
	}
	return nodeOutputs[N.kind]
}

func socketNames(list []socket) []string {
	ret := make([]string, 0, len(list))
	for _, s := range list {
		ret = append(ret, s.name)
	}
	return ret
}

func (N *Node) Kind() dumpviz.NodeKind { return N.kind }

func (N *Node) SetInput(name string, value any) error {
	if !slices.Contains(N.inputNames(), name) {
		return fmt.Errorf("memhost: %s has no input %q", N.kind, name)
	}
	switch value.(type) {
	case float64, [3]float64, bool, dumpviz.Object:
	default:
		return fmt.Errorf("memhost: unsupported value %T for input %q", value, name)
	}
	N.values[name] = value
	return nil
}

func (N *Node) Input(name string) (any, bool) {
	v, ok := N.values[name]
	return v, ok
}
