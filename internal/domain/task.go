// Package domain contains the task tree entities and core algorithms.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// Node represents a sub-task in the tree. A node may itself carry
// children, so trees can nest to arbitrary depth. Children are kept
// sorted by Number; that order is authoritative for traversal and
// listing.
// Fields are ordered to minimize memory padding.
type Node struct {
	Created  time.Time `json:"created"`
	Started  time.Time `json:"started,omitzero"`
	Finished time.Time `json:"finished,omitzero"`
	Name     string    `json:"name"`
	Status   Status    `json:"status"`
	Children []*Node   `json:"children,omitempty"`
	Number   int       `json:"number"`
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// child returns the direct child with the given number, or nil.
func (n *Node) child(number int) *Node {
	for _, c := range n.Children {
		if c.Number == number {
			return c
		}
	}
	return nil
}

// MainTask is a root-level task, numbered sequentially per project.
// Its status is derived from its children whenever it has any.
// Fields are ordered to minimize memory padding.
type MainTask struct {
	Created     time.Time `json:"created"`
	Started     time.Time `json:"started,omitzero"`
	Finished    time.Time `json:"finished,omitzero"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Children    []*Node   `json:"children,omitempty"`
	ID          int       `json:"id"`
}

// IsLeaf returns true if the main task has no sub-tasks. A childless
// main task is itself the unit of actionable work.
func (m *MainTask) IsLeaf() bool {
	return len(m.Children) == 0
}

// Path returns the hierarchical id of the main task ("1", "2", ...).
func (m *MainTask) Path() string {
	return strconv.Itoa(m.ID)
}

// Clone returns a deep copy of the main task.
func (m *MainTask) Clone() *MainTask {
	c := *m
	if m.Children != nil {
		c.Children = make([]*Node, len(m.Children))
		for i, ch := range m.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// child returns the direct child with the given number, or nil.
func (m *MainTask) child(number int) *Node {
	for _, c := range m.Children {
		if c.Number == number {
			return c
		}
	}
	return nil
}

// ParsePath parses a dot-separated hierarchical id ("1.2.1") into its
// integer levels. Every level must be a positive integer.
func ParsePath(path string) ([]int, error) {
	if path == "" {
		return nil, ErrInvalidParentPath
	}
	parts := strings.Split(path, ".")
	levels := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, ErrInvalidParentPath
		}
		levels[i] = n
	}
	return levels, nil
}

// JoinPath renders integer levels as a dot-separated hierarchical id.
func JoinPath(levels []int) string {
	parts := make([]string, len(levels))
	for i, n := range levels {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
