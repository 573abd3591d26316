package lineage

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// node is a single tech in the inheritance forest.
type node struct {
	id       string
	parent   *node
	children map[string]*node
}

// Forest is the parent/child topology of a registry. It is safe for
// concurrent reads once built.
type Forest struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// New creates and returns an initialized, empty Forest.
func New() *Forest {
	return &Forest{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID. If a node with the same ID
// already exists, the function does nothing.
func (f *Forest) AddNode(id string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, ok := f.nodes[id]; ok {
		return
	}

	f.nodes[id] = &node{
		id:       id,
		children: make(map[string]*node),
	}
}

// SetParent records that childID inherits from parentID. An error is
// returned if either node does not exist or if the child already has a
// parent. A self-referential edge is a parent cycle of length one and is
// reported as a *config.CycleError like any longer loop.
func (f *Forest) SetParent(childID, parentID string) error {
	if childID == parentID {
		return &config.CycleError{Chain: []string{childID, childID}}
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	child, ok := f.nodes[childID]
	if !ok {
		return fmt.Errorf("child node not found: %s", childID)
	}
	parent, ok := f.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent node not found: %s", parentID)
	}
	if child.parent != nil {
		return fmt.Errorf("node %s already has parent %s", childID, child.parent.id)
	}

	child.parent = parent
	parent.children[childID] = child

	return nil
}

// Chain returns the inheritance chain for the given node, most distant
// ancestor first and the node itself last. The visited set guards against
// a cycle that slipped past construction-time checks.
func (f *Forest) Chain(id string) ([]string, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	n, ok := f.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	var chain []string
	visited := make(map[string]struct{})
	for n != nil {
		if _, seen := visited[n.id]; seen {
			return nil, &config.CycleError{Chain: append(reversed(chain), n.id)}
		}
		visited[n.id] = struct{}{}
		chain = append(chain, n.id)
		n = n.parent
	}

	return reversed(chain), nil
}

// DetectCycles checks the forest for parent loops. It returns a
// *config.CycleError naming the first detected cycle, or nil.
func (f *Forest) DetectCycles() error {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited, known not to be part of a cycle.
	// temporary: currently on the recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return &config.CycleError{Chain: cycleFrom(stack, n.id)}
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, child := range n.children {
			if err := visit(child); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, n := range f.nodes {
		if !permanent[n.id] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	return nil
}

// Build constructs the forest for a registry's name-to-parent mapping and
// runs static cycle detection before returning it.
func Build(ctx context.Context, parents map[string]string) (*Forest, error) {
	logger := ctxlog.FromContext(ctx)

	forest := New()
	for name := range parents {
		forest.AddNode(name)
	}
	for name, parent := range parents {
		if parent == "" {
			continue
		}
		if err := forest.SetParent(name, parent); err != nil {
			return nil, err
		}
	}

	if err := forest.DetectCycles(); err != nil {
		return nil, err
	}
	logger.Debug("Inheritance forest built.", "nodes", len(parents))

	return forest, nil
}

// cycleFrom trims the DFS stack down to the loop itself: the segment from
// the first occurrence of repeated onward, closed with repeated again.
func cycleFrom(stack []string, repeated string) []string {
	for i, id := range stack {
		if id == repeated {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, repeated)
		}
	}
	return []string{repeated, repeated}
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
