/*
Copyright © 2026 The Fob Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package tsquery

import ts "github.com/tree-sitter/go-tree-sitter"

// Position is a zero-based line/character pair, LSP-style.
type Position struct {
	Line      uint32
	Character uint32
}

// Range spans two Positions.
type Range struct {
	Start Position
	End   Position
}

// byteOffsetToPosition walks source once per call; fine for the rare
// diagnostic path, too slow to call per-node in a hot loop.
func byteOffsetToPosition(source []byte, offset uint) Position {
	var line, char uint32
	for i, b := range source {
		if uint(i) >= offset {
			break
		}
		if b == '\n' {
			line++
			char = 0
		} else {
			char++
		}
	}
	return Position{Line: line, Character: char}
}

// NodeToRange converts a tree-sitter node's byte span into a line/column
// Range against source.
func NodeToRange(node *ts.Node, source []byte) Range {
	return Range{
		Start: byteOffsetToPosition(source, node.StartByte()),
		End:   byteOffsetToPosition(source, node.EndByte()),
	}
}

// GetDescendantById walks root looking for the node with the given
// tree-sitter node id, as produced by (*ts.Node).Id(). Used to go from a
// CaptureInfo.NodeId (captured once, cheap to store) back to a live node
// when a diagnostic needs its full range.
func GetDescendantById(root *ts.Node, id int) *ts.Node {
	cursor := root.Walk()
	defer cursor.Close()

	var find func(node *ts.Node) *ts.Node
	find = func(node *ts.Node) *ts.Node {
		if int(node.Id()) == id {
			return node
		}
		for i := range int(node.ChildCount()) {
			child := node.Child(uint(i))
			if child == nil {
				continue
			}
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}
	return find(root)
}
