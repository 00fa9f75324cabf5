// SPDX-License-Identifier: EPL-2.0

// Package graph is the typed signal graph that records how the session's
// stages are wired. Every port has a channel width and an edge is only
// recorded when both ends agree on it.
//
// A Graph is not safe for concurrent use; the session controller owns it.
package graph

import (
	"fmt"
	"slices"
)

// Kind tags a Node.
type Kind int

const (
	Source Kind = iota
	Splitter
	Gain
	Merger
	Stage
	Destination
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Splitter:
		return "splitter"
	case Gain:
		return "gain"
	case Merger:
		return "merger"
	case Stage:
		return "stage"
	case Destination:
		return "destination"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Processor is a block stage with fixed input and output channel counts.
type Processor interface {
	Inputs() int
	Outputs() int
	ProcessBlock(dst, src [][]float64)
}

// NodeID identifies a node inside one Graph.
type NodeID int

// Node is one vertex. In and Out hold the channel width of each port.
type Node struct {
	ID   NodeID
	Kind Kind
	Name string
	In   []int
	Out  []int

	// Gain is the scalar of a Gain node.
	Gain float64
	// Processor backs a Stage node.
	Processor Processor
}

// Edge connects output port Output of From to input port Input of To.
type Edge struct {
	From   NodeID
	Output int
	To     NodeID
	Input  int
}

type Graph struct {
	nodes map[NodeID]*Node
	order []NodeID
	edges []Edge
	next  NodeID
}

func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

func (g *Graph) add(n *Node) NodeID {
	n.ID = g.next
	g.next++
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return n.ID
}

// AddSource adds a node with one output of the given width.
func (g *Graph) AddSource(name string, channels int) NodeID {
	return g.add(&Node{Kind: Source, Name: name, Out: []int{channels}})
}

// AddSplitter adds a node taking one port of the given width and exposing
// each channel on its own mono output.
func (g *Graph) AddSplitter(name string, channels int) NodeID {
	return g.add(&Node{Kind: Splitter, Name: name, In: []int{channels}, Out: repeat(1, channels)})
}

// AddGain adds a scalar gain of the given width.
func (g *Graph) AddGain(name string, channels int, gain float64) NodeID {
	return g.add(&Node{Kind: Gain, Name: name, In: []int{channels}, Out: []int{channels}, Gain: gain})
}

// AddMerger adds a node with one mono input per channel and a single output
// carrying all of them. Several edges into one input are summed.
func (g *Graph) AddMerger(name string, channels int) NodeID {
	return g.add(&Node{Kind: Merger, Name: name, In: repeat(1, channels), Out: []int{channels}})
}

// AddStage adds a processing stage whose port widths come from p.
func (g *Graph) AddStage(name string, p Processor) NodeID {
	return g.add(&Node{Kind: Stage, Name: name, In: []int{p.Inputs()}, Out: []int{p.Outputs()}, Processor: p})
}

// AddDestination adds a sink with one input of the given width.
func (g *Graph) AddDestination(name string, channels int) NodeID {
	return g.add(&Node{Kind: Destination, Name: name, In: []int{channels}})
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns the live nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns a copy of the recorded edges.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

func (g *Graph) Len() int { return len(g.order) }

func (g *Graph) validate(e Edge) error {
	from, ok := g.nodes[e.From]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, e.From)
	}
	to, ok := g.nodes[e.To]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, e.To)
	}
	if e.Output < 0 || e.Output >= len(from.Out) {
		return fmt.Errorf("%w: %s %q has %d outputs, got %d", ErrPortOutOfRange, from.Kind, from.Name, len(from.Out), e.Output)
	}
	if e.Input < 0 || e.Input >= len(to.In) {
		return fmt.Errorf("%w: %s %q has %d inputs, got %d", ErrPortOutOfRange, to.Kind, to.Name, len(to.In), e.Input)
	}
	if w, want := from.Out[e.Output], to.In[e.Input]; w != want {
		return fmt.Errorf("%w: %q output %d carries %d channels, %q input %d takes %d",
			ErrShapeMismatch, from.Name, e.Output, w, to.Name, e.Input, want)
	}

	return nil
}

// Connect records one edge after validating it.
func (g *Graph) Connect(from NodeID, output int, to NodeID, input int) error {
	e := Edge{From: from, Output: output, To: to, Input: input}
	if err := g.validate(e); err != nil {
		return err
	}
	g.edges = append(g.edges, e)
	return nil
}

// ConnectAll records every edge or none of them.
func (g *Graph) ConnectAll(edges []Edge) error {
	for _, e := range edges {
		if err := g.validate(e); err != nil {
			return err
		}
	}
	g.edges = append(g.edges, edges...)
	return nil
}

// Incoming returns the edges ending at id.
func (g *Graph) Incoming(id NodeID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.To == id {
			out = append(out, e)
		}
	}
	return out
}

// Outgoing returns the edges starting at id.
func (g *Graph) Outgoing(id NodeID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Disconnect drops every edge touching id.
func (g *Graph) Disconnect(id NodeID) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.From == id || e.To == id
	})
}

// Remove disconnects and deletes a node.
func (g *Graph) Remove(id NodeID) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	g.Disconnect(id)
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(v NodeID) bool { return v == id })
	return nil
}

// Release drops all nodes and edges.
func (g *Graph) Release() {
	clear(g.nodes)
	g.order = g.order[:0]
	g.edges = nil
}

func repeat(v, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
