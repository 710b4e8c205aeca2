/*
 * memhost_test.go, part of dumpviz.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/dumpviz"
	v3 "github.com/rmera/dumpviz/v3"
)

func TestTimelineSubscriptions(t *testing.T) {
	tl := NewTimeline()
	var seen []int
	s1 := tl.Subscribe(func(f int) { seen = append(seen, f) })
	s2 := tl.Subscribe(func(f int) { seen = append(seen, -f) })
	assert.NotEqual(t, s1, s2)
	assert.True(t, s1.Valid())
	tl.SetCurrent(3)
	assert.Equal(t, []int{3, -3}, seen)

	require.NoError(t, tl.Unsubscribe(s1))
	assert.Error(t, tl.Unsubscribe(s1), "a token only works once")
	assert.Error(t, tl.Unsubscribe(dumpviz.Subscription{}))
	tl.SetCurrent(4)
	assert.Equal(t, []int{3, -3, -4}, seen)
	assert.Equal(t, 1, tl.Subscribers())
}

func TestMeshTagsSurviveMoves(t *testing.T) {
	sc := NewScene()
	o := sc.NewPointObject("carrier").(*Object)
	m := o.PointMesh()
	c, err := v3.NewMatrix([]float64{0, 0, 0, 1, 1, 1})
	require.NoError(t, err)
	m.Rebuild(c)
	m.Tag(1, "surface")
	m.SetVec(1, 2, 2, 2)
	l, ok := m.TagOf(1)
	assert.True(t, ok)
	assert.Equal(t, "surface", l)
	m.Rebuild(c)
	_, ok = m.TagOf(1)
	assert.False(t, ok)
	assert.Equal(t, 2, m.Rebuilds)

	o2 := sc.NewPointObject("carrier")
	assert.Equal(t, "carrier.001", o2.Name())
}

func TestModifierOrder(t *testing.T) {
	m := &Modifiers{}
	m.New("a", dumpviz.NodesModifier)
	m.New("b", dumpviz.MeshCacheModifier)
	m.New("c", dumpviz.NodesModifier)
	require.NoError(t, m.MoveUp("b"))
	require.NoError(t, m.MoveUp("b"))
	assert.Equal(t, []string{"b", "a", "c"}, m.Names())
	require.NoError(t, m.MoveDown("a"))
	require.NoError(t, m.MoveDown("a"))
	assert.Equal(t, []string{"b", "c", "a"}, m.Names())
	assert.Error(t, m.MoveUp("zzz"))
	require.NoError(t, m.Remove("c"))
	assert.Equal(t, []string{"b", "a"}, m.Names())
	assert.Error(t, m.Remove("c"))
}

func TestNodeTreeLinks(t *testing.T) {
	sc := NewScene()
	tree := sc.NewNodeTree("g")
	require.NoError(t, tree.NewInput(dumpviz.GeometrySocket, "Geometry"))
	require.NoError(t, tree.NewInput(dumpviz.FloatSocket, "AtomScale"))
	require.NoError(t, tree.NewOutput(dumpviz.GeometrySocket, "Geometry"))
	assert.Error(t, tree.SetInputDefault("Geometry", 1))
	require.NoError(t, tree.SetInputDefault("AtomScale", 0.5))

	in := tree.AddNode(dumpviz.GroupInputNode)
	m2p := tree.AddNode(dumpviz.MeshToPointsNode)
	require.NoError(t, tree.Link(in, "Geometry", m2p, "Mesh"))
	assert.Error(t, tree.Link(in, "Nope", m2p, "Mesh"))
	assert.Error(t, m2p.SetInput("Nope", 1.0))
	assert.Error(t, m2p.SetInput("Radius", "zero"))

	other := sc.NewNodeTree("h").AddNode(dumpviz.TransformNode)
	assert.Error(t, tree.Link(other, "Geometry", m2p, "Mesh"))
	assert.Len(t, tree.Links(), 1)

	mods := &Modifiers{}
	mod := mods.New("g", dumpviz.NodesModifier)
	assert.False(t, mod.HasParam("AtomScale"))
	mod.SetNodeTree(tree)
	assert.True(t, mod.HasParam("AtomScale"))
	assert.False(t, mod.HasParam("Geometry"))
	v, ok := mod.Param("AtomScale")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
}
