package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Tree is one project's complete task collection: the ordered list of
// main tasks plus the id counter. It is the unit of persistence; a
// Tree is only valid inside the store lock that produced it.
type Tree struct {
	Tasks  []*MainTask `json:"tasks"`
	NextID int         `json:"nextID"`
}

// NewTree returns an empty tree. The first main task gets id 1.
func NewTree() *Tree {
	return &Tree{NextID: 1}
}

// MainTask returns the main task with the given id, or nil.
func (t *Tree) MainTask(id int) *MainTask {
	for _, m := range t.Tasks {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AddMainTask appends a new main task with the next sequential id.
// Ids are never reused, even if a task is later removed.
func (t *Tree) AddMainTask(name, description string, now time.Time) *MainTask {
	m := &MainTask{
		ID:          t.NextID,
		Name:        name,
		Description: description,
		Status:      StatusPending,
		Created:     now,
	}
	t.NextID++
	t.Tasks = append(t.Tasks, m)
	return m
}

// AddChild inserts a new sub-task under parentPath at the given sibling
// position. parentPath is a hierarchical id whose first level must be
// the id of an existing main task; the main task id alone addresses the
// root. Missing intermediate nodes along the path are created as
// pending placeholders, mirroring how the tree is grown from externally
// numbered plans. An occupied position is rejected with
// ErrDuplicatePosition and no mutation is applied.
//
// The returned string is the new node's hierarchical id
// (parentPath + "." + number).
func (t *Tree) AddChild(parentPath string, number int, name string, now time.Time) (*Node, string, error) {
	levels, err := ParsePath(parentPath)
	if err != nil {
		return nil, "", err
	}
	m := t.MainTask(levels[0])
	if m == nil {
		return nil, "", fmt.Errorf("main task %d: %w", levels[0], ErrTaskNotFound)
	}
	if number <= 0 {
		return nil, "", ErrInvalidPosition
	}

	// Walk down to the parent, creating missing intermediate levels as
	// placeholders. A freshly created parent cannot hold the target
	// position yet, so the duplicate check below only ever fires before
	// any mutation has happened.
	children := &m.Children
	prefix := levels[:1]
	for _, lv := range levels[1:] {
		next := childIn(*children, lv)
		prefix = append(prefix, lv)
		if next == nil {
			next = &Node{
				Number:  lv,
				Name:    "Task " + JoinPath(prefix),
				Status:  StatusPending,
				Created: now,
			}
			insertSorted(children, next)
		}
		children = &next.Children
	}

	if childIn(*children, number) != nil {
		return nil, "", duplicateAt(parentPath, number)
	}
	node := &Node{
		Number:  number,
		Name:    name,
		Status:  StatusPending,
		Created: now,
	}
	insertSorted(children, node)

	// Adding work under a completed subtree reopens it.
	t.Propagate(m, now)

	return node, parentPath + "." + JoinPath([]int{number}), nil
}

func duplicateAt(parentPath string, number int) error {
	return fmt.Errorf("position %s.%d: %w", parentPath, number, ErrDuplicatePosition)
}

// childIn returns the node with the given number from a sibling list.
func childIn(children []*Node, number int) *Node {
	for _, c := range children {
		if c.Number == number {
			return c
		}
	}
	return nil
}

// insertSorted adds a node to a sibling list, keeping ascending Number
// order. The order is authoritative and must survive persistence.
func insertSorted(children *[]*Node, n *Node) {
	*children = append(*children, n)
	sort.SliceStable(*children, func(i, j int) bool {
		return (*children)[i].Number < (*children)[j].Number
	})
}

// findNode walks the relative levels below a main task. Returns nil if
// any level is missing. Empty levels address the main task itself, for
// which the caller must use the MainTask directly.
func (t *Tree) findNode(m *MainTask, levels []int) *Node {
	if len(levels) == 0 {
		return nil
	}
	cur := m.child(levels[0])
	for _, lv := range levels[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.child(lv)
	}
	return cur
}

// Resolve looks up a node by hierarchical id. Exactly one of the
// returned main task / node is non-nil on success: a bare main task id
// ("2") yields the main task, a longer path ("2.1.3") yields the node.
func (t *Tree) Resolve(path string) (*MainTask, *Node, error) {
	levels, err := ParsePath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("path %q: %w", path, ErrTaskNotFound)
	}
	m := t.MainTask(levels[0])
	if m == nil {
		return nil, nil, fmt.Errorf("path %q: %w", path, ErrTaskNotFound)
	}
	if len(levels) == 1 {
		return m, nil, nil
	}
	n := t.findNode(m, levels[1:])
	if n == nil {
		return nil, nil, fmt.Errorf("path %q: %w", path, ErrTaskNotFound)
	}
	return nil, n, nil
}

// CompleteLeaf transitions the leaf at path from in_progress to
// completed and re-derives every ancestor status. Nodes with children
// are rejected with ErrNotALeaf; any status other than in_progress is
// rejected with ErrInvalidTransition. Nothing is mutated on failure.
func (t *Tree) CompleteLeaf(path string, now time.Time) error {
	m, n, err := t.Resolve(path)
	if err != nil {
		return err
	}
	if m != nil {
		// A childless main task is its own leaf.
		if !m.IsLeaf() {
			return fmt.Errorf("task %s: %w", path, ErrNotALeaf)
		}
		if !m.Status.CanTransitionTo(StatusCompleted) {
			return fmt.Errorf("task %s is %s: %w", path, m.Status, ErrInvalidTransition)
		}
		m.Status = StatusCompleted
		m.Finished = now
		return nil
	}
	if !n.IsLeaf() {
		return fmt.Errorf("task %s: %w", path, ErrNotALeaf)
	}
	if !n.Status.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("task %s is %s: %w", path, n.Status, ErrInvalidTransition)
	}
	n.Status = StatusCompleted
	n.Finished = now

	root := t.MainTask(mustFirstLevel(path))
	t.Propagate(root, now)
	return nil
}

func mustFirstLevel(path string) int {
	levels, _ := ParsePath(path)
	return levels[0]
}

// Propagate re-derives the status of every node with children in the
// subtree rooted at m, bottom-up, and finally of m itself. It is
// idempotent: a second run from the same leaf states is a no-op.
// Timestamps follow the derived transitions.
func (t *Tree) Propagate(m *MainTask, now time.Time) {
	if m == nil || m.IsLeaf() {
		return
	}
	for _, c := range m.Children {
		propagateNode(c, now)
	}
	derived := Recompute(m.Children)
	applyDerived(&m.Status, &m.Started, &m.Finished, derived, now)
}

func propagateNode(n *Node, now time.Time) {
	if n.IsLeaf() {
		return
	}
	for _, c := range n.Children {
		propagateNode(c, now)
	}
	derived := Recompute(n.Children)
	applyDerived(&n.Status, &n.Started, &n.Finished, derived, now)
}

// applyDerived updates a parent's status to the derived value and keeps
// the started/finished timestamps consistent with it. Derivation may
// move a parent backward (a new pending child under a completed subtree
// reopens it), so finished/started marks are cleared when the derived
// status retreats.
func applyDerived(status *Status, started, finished *time.Time, derived Status, now time.Time) {
	if *status == derived {
		return
	}
	*status = derived
	switch derived {
	case StatusInProgress:
		if started.IsZero() {
			*started = now
		}
		*finished = time.Time{}
	case StatusCompleted:
		if started.IsZero() {
			*started = now
		}
		*finished = now
	case StatusPending:
		*started = time.Time{}
		*finished = time.Time{}
	}
}

// FindMainTasksByName returns the main tasks whose name starts with the
// given prefix, in name order.
func (t *Tree) FindMainTasksByName(prefix string) []*MainTask {
	var out []*MainTask
	for _, m := range t.Tasks {
		if strings.HasPrefix(m.Name, prefix) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// ListedTask is one entry in a flattened subtree listing.
// Fields are ordered to minimize memory padding.
type ListedTask struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Depth  int    `json:"depth"`
	Leaf   bool   `json:"leaf"`
}

// ListSubTasks flattens the subtree of a main task in pre-order,
// siblings in ascending number order. The main task itself is not
// included.
func (t *Tree) ListSubTasks(mainID int) ([]ListedTask, error) {
	m := t.MainTask(mainID)
	if m == nil {
		return nil, fmt.Errorf("main task %d: %w", mainID, ErrTaskNotFound)
	}
	var out []ListedTask
	var walk func(prefix string, depth int, nodes []*Node)
	walk = func(prefix string, depth int, nodes []*Node) {
		for _, n := range nodes {
			path := prefix + "." + JoinPath([]int{n.Number})
			out = append(out, ListedTask{
				Path:   path,
				Name:   n.Name,
				Status: n.Status,
				Depth:  depth,
				Leaf:   n.IsLeaf(),
			})
			walk(path, depth+1, n.Children)
		}
	}
	walk(m.Path(), 1, m.Children)
	return out, nil
}
