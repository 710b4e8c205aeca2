/*
 * graph_test.go, part of dumpviz.
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

package instancing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
	"github.com/rmera/dumpviz/memhost"
)

const treeName = "GN_AtomsInstance"

// shape summarizes a graph as comparable values.
type shape struct {
	Inputs []string
	Kinds  []dumpviz.NodeKind
	Links  []string
	Scale  float64
}

func shapeOf(t *testing.T, g *Graph) shape {
	t.Helper()
	var s shape
	s.Inputs = g.Tree.InputNames()
	for _, n := range g.Tree.Nodes() {
		s.Kinds = append(s.Kinds, n.Kind())
	}
	for _, l := range g.Tree.Links() {
		s.Links = append(s.Links, string(l.From.Kind())+"."+l.Output+">"+string(l.To.Kind())+"."+l.Input)
	}
	v, ok := g.Scale()
	require.True(t, ok)
	s.Scale = v
	return s
}

func setup() (*memhost.Scene, dumpviz.Object, dumpviz.Object) {
	sc := memhost.NewScene()
	carrier := sc.NewPointObject("AtomInstancer")
	proto := sc.NewPointObject("Sphere")
	return sc, carrier, proto
}

func TestBuildIdempotent(t *testing.T) {
	sc, carrier, proto := setup()
	carrier.SetDupliVerts(true)

	g1, err := Build(sc, carrier, proto, 0.2, treeName)
	require.NoError(t, err)
	first := shapeOf(t, g1)
	assert.False(t, carrier.DupliVerts())

	g2, err := Build(sc, carrier, proto, 0.2, treeName)
	require.NoError(t, err)
	assert.Equal(t, first, shapeOf(t, g2))
	assert.Equal(t, 1, carrier.Modifiers().Len(), "no duplicated modifier")
	assert.False(t, carrier.DupliVerts())

	assert.Equal(t, []string{"Geometry", ScaleParam}, first.Inputs)
	assert.Len(t, first.Kinds, 6)
	assert.Contains(t, first.Links, "GeometryNodeTransform.Geometry>GeometryNodeInstanceOnPoints.Instance")
	assert.Contains(t, first.Links, "NodeGroupInput.Geometry>GeometryNodeMeshToPoints.Mesh")
	assert.Equal(t, 0.2, first.Scale)
}

func TestBuildReplacesWrongKind(t *testing.T) {
	sc, carrier, proto := setup()
	carrier.Modifiers().New(treeName, dumpviz.MeshCacheModifier)
	g, err := Build(sc, carrier, proto, 0.3, treeName)
	require.NoError(t, err)
	mods := carrier.Modifiers()
	assert.Equal(t, 1, mods.Len())
	m, ok := mods.Get(treeName)
	require.True(t, ok)
	assert.Equal(t, dumpviz.NodesModifier, m.Kind())
	assert.Same(t, g.Modifier, m)

	found, err := Find(carrier, treeName)
	require.NoError(t, err)
	v, ok := found.Scale()
	require.True(t, ok)
	assert.Equal(t, 0.3, v)
}

func TestBuildPreconditions(t *testing.T) {
	sc, carrier, _ := setup()
	_, err := Build(sc, carrier, nil, 0.2, treeName)
	assert.True(t, dumpviz.IsPrecondition(err))
	_, err = Build(sc, nil, carrier, 0.2, treeName)
	assert.True(t, dumpviz.IsPrecondition(err))
	assert.Equal(t, 0, carrier.Modifiers().Len())
}

func TestSetScale(t *testing.T) {
	sc, carrier, proto := setup()
	_, err := Find(carrier, treeName)
	assert.True(t, dumpviz.IsPrecondition(err), "nothing built yet")

	_, err = Build(sc, carrier, proto, 0.2, treeName)
	require.NoError(t, err)
	g, err := Find(carrier, treeName)
	require.NoError(t, err)
	nodes := len(g.Tree.Nodes())

	require.NoError(t, g.SetScale(0.75))
	v, _ := g.Scale()
	assert.Equal(t, 0.75, v)
	d, _ := g.Tree.InputDefault(ScaleParam)
	assert.Equal(t, 0.75, d)
	sv, ok := g.transform.Input("Scale")
	require.True(t, ok)
	assert.Equal(t, [3]float64{0.75, 0.75, 0.75}, sv)
	assert.Equal(t, nodes, len(g.Tree.Nodes()), "no rebuild")

	assert.True(t, dumpviz.IsPrecondition(g.SetScale(-1)))
	v, _ = g.Scale()
	assert.Equal(t, 0.75, v)
}

func TestOrderModifiers(t *testing.T) {
	sc, carrier, proto := setup()
	carrier.Modifiers().New("Other", dumpviz.NodesModifier)
	_, err := Build(sc, carrier, proto, 0.2, treeName)
	require.NoError(t, err)
	carrier.Modifiers().New("MeshCache", dumpviz.MeshCacheModifier)
	carrier.Modifiers().New("Tail", dumpviz.NodesModifier)

	require.NoError(t, OrderModifiers(carrier, treeName))
	mods := carrier.Modifiers()
	assert.Equal(t, mods.Len()-1, mods.Index(treeName))
	assert.Less(t, mods.Index("MeshCache"), mods.Index(treeName))

	assert.True(t, dumpviz.IsPrecondition(OrderModifiers(proto, treeName)))
}
