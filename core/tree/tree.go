/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package tree groups grid records into a hierarchy, one level per key
// column (for example room then bed), for screens that browse nested
// entities.
//
// Terminology:
// * a level is one grouping column of the hierarchy
// * a node is one distinct value of a level within its parent node
// * the records of the last level are the node's leaf records
package tree

import (
	"strings"

	"github.com/hospadmin/console/core/grid"
)

// Level is one grouping column of a tree.
type Level struct {
	Key   string
	Label string
}

// Node is a group of records sharing the same value on a level and on
// every level above it.
type Node[R grid.Record] struct {
	Key   string
	Label string
	// Value is the raw value shared by the node's records.
	Value any
	Depth int
	// Path identifies the node, e.g. "room=101/ward=North".
	Path     string
	Parent   *Node[R]
	Children []*Node[R]
	// Records holds every record under the node, in input order.
	Records []R
}

// Count returns the number of records under the node.
func (n *Node[R]) Count() int {
	return len(n.Records)
}

// IsLeaf reports whether the node is on the last level.
func (n *Node[R]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Height returns the number of leaf nodes under n.
func (n *Node[R]) Height() int {
	if n.IsLeaf() {
		return 1
	}
	height := 0
	for _, child := range n.Children {
		height += child.Height()
	}
	return height
}

// Tree is the hierarchy built from a slice of records.
type Tree[R grid.Record] struct {
	Levels []Level
	Roots  []*Node[R]
}

// Build groups records by each level in turn. Nodes appear in the order
// their value is first seen, so a sorted input yields sorted nodes.
// Records missing a level's field are grouped under an empty value.
func Build[R grid.Record](records []R, levels []Level) *Tree[R] {
	t := &Tree[R]{Levels: levels}
	if len(levels) == 0 {
		return t
	}
	t.Roots = groupLevel(records, levels, 0, nil)
	return t
}

func groupLevel[R grid.Record](records []R, levels []Level, depth int, parent *Node[R]) []*Node[R] {
	level := levels[depth]
	var nodes []*Node[R]
	byText := make(map[string]*Node[R])

	for _, r := range records {
		raw, _ := r.Field(level.Key)
		text := grid.RawText(raw)
		node, ok := byText[text]
		if !ok {
			node = &Node[R]{
				Key:    level.Key,
				Label:  level.Label,
				Value:  raw,
				Depth:  depth,
				Path:   nodePath(parent, level.Key, text),
				Parent: parent,
			}
			byText[text] = node
			nodes = append(nodes, node)
		}
		node.Records = append(node.Records, r)
	}

	if depth+1 < len(levels) {
		for _, node := range nodes {
			node.Children = groupLevel(node.Records, levels, depth+1, node)
		}
	}
	return nodes
}

func nodePath[R grid.Record](parent *Node[R], key, value string) string {
	segment := key + "=" + value
	if parent == nil {
		return segment
	}
	return parent.Path + "/" + segment
}

// Line is one visible line of a flattened tree.
type Line[R grid.Record] struct {
	Node     *Node[R]
	Expanded bool
}

// Flatten walks the tree depth first and returns the visible lines:
// the children of a node are visible only when its path is expanded.
func (t *Tree[R]) Flatten(expanded map[string]bool) []Line[R] {
	var lines []Line[R]
	var walk func(nodes []*Node[R])
	walk = func(nodes []*Node[R]) {
		for _, n := range nodes {
			open := expanded[n.Path] && !n.IsLeaf()
			lines = append(lines, Line[R]{Node: n, Expanded: open})
			if open {
				walk(n.Children)
			}
		}
	}
	walk(t.Roots)
	return lines
}

// Find returns the node at path, or nil.
func (t *Tree[R]) Find(path string) *Node[R] {
	nodes := t.Roots
	for len(nodes) > 0 {
		var next []*Node[R]
		for _, n := range nodes {
			if n.Path == path {
				return n
			}
			if strings.HasPrefix(path, n.Path+"/") {
				next = n.Children
				break
			}
		}
		nodes = next
	}
	return nil
}
