// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"

	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/graph"
	"github.com/ik5/hoapbx/internal/block"
	"github.com/ik5/hoapbx/internal/metrics"
)

// Renderer is the audio side of a session. It pulls interleaved frames
// from src, runs them through the stages block by block, applies the
// output gain and hands the interleaved result to the caller.
//
// All buffers are allocated by NewRenderer; ReadSamples neither allocates
// nor locks.
type Renderer struct {
	src       audio.Source
	stages    []graph.Processor
	gain      float64
	blockSize int
	inputs    int
	outputs   int
	metrics   *metrics.Metrics

	in    []float32
	bufs  [2][][]float64
	views [2][][]float64
}

var _ audio.Source = (*Renderer)(nil)

// NewRenderer chains stages after src. Each stage must take as many
// channels as the previous one produces.
func NewRenderer(src audio.Source, stages []graph.Processor, gain float64, blockSize int, m *metrics.Metrics) (*Renderer, error) {
	if blockSize < 1 {
		blockSize = DefaultBlockSize
	}

	width := src.Channels()
	widest := width
	for i, s := range stages {
		if s.Inputs() != width {
			return nil, fmt.Errorf("%w: stage %d takes %d channels, gets %d", graph.ErrShapeMismatch, i, s.Inputs(), width)
		}
		width = s.Outputs()
		widest = max(widest, width)
	}
	if width < 1 {
		return nil, fmt.Errorf("%w: renderer produces no channels", graph.ErrShapeMismatch)
	}

	r := &Renderer{
		src:       src,
		stages:    stages,
		gain:      gain,
		blockSize: blockSize,
		inputs:    src.Channels(),
		outputs:   width,
		metrics:   m,
		in:        make([]float32, blockSize*src.Channels()),
	}
	for i := range r.bufs {
		r.bufs[i] = block.Planar(widest, blockSize)
		r.views[i] = make([][]float64, widest)
	}
	return r, nil
}

func (r *Renderer) SampleRate() int { return r.src.SampleRate() }
func (r *Renderer) Channels() int   { return r.outputs }
func (r *Renderer) BufSize() int    { return r.blockSize * r.outputs }
func (r *Renderer) Close() error    { return r.src.Close() }

// ReadSamples renders at most one block. The source's io.EOF is passed
// through with the last frames.
func (r *Renderer) ReadSamples(dst []float32) (int, error) {
	frames := min(len(dst)/r.outputs, r.blockSize)
	if frames == 0 {
		return 0, nil
	}

	n, err := r.src.ReadSamples(r.in[:frames*r.inputs])
	frames = n / r.inputs
	if frames == 0 {
		return 0, err
	}

	cur := block.View(r.views[0], r.bufs[0], r.inputs, frames)
	for f := range frames {
		for c := range r.inputs {
			cur[c][f] = float64(r.in[f*r.inputs+c])
		}
	}

	side := 0
	for _, s := range r.stages {
		next := block.View(r.views[1-side], r.bufs[1-side], s.Outputs(), frames)
		s.ProcessBlock(next, cur)
		cur = next
		side = 1 - side
	}

	for c, ch := range cur {
		if r.gain != 1 {
			block.Scale(ch, ch, r.gain)
		}
		for f, v := range ch {
			dst[f*r.outputs+c] = float32(v)
		}
	}

	r.metrics.FramesRendered(frames)
	return frames * r.outputs, err
}

// Chain walks g from entry along the first outgoing edge of each node and
// collects the stage processors and the product of the gains met on the
// way, up to a Destination node.
func Chain(g *graph.Graph, entry graph.NodeID) ([]graph.Processor, float64, error) {
	var stages []graph.Processor
	gain := 1.0

	id := entry
	for range g.Len() + 1 {
		n, ok := g.Node(id)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %d", graph.ErrUnknownNode, id)
		}

		switch n.Kind {
		case graph.Stage:
			stages = append(stages, n.Processor)
		case graph.Gain:
			gain *= n.Gain
		case graph.Destination:
			return stages, gain, nil
		}

		out := g.Outgoing(id)
		if len(out) == 0 {
			return nil, 0, fmt.Errorf("%w: %s %q leads nowhere", graph.ErrUnknownNode, n.Kind, n.Name)
		}
		id = out[0].To
	}
	return nil, 0, fmt.Errorf("%w: cycle after node %d", graph.ErrShapeMismatch, entry)
}
