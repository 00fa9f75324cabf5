// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"context"
	"fmt"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/graph"
	"github.com/ik5/hoapbx/internal/block"
)

type tap struct {
	channel int
	gain    float64
}

// MatrixDecoder is the per-channel gain-matrix stage. Each (channel,
// speaker) pair with a non-zero coefficient becomes a gain node between a
// channel splitter and a speaker merger; ProcessBlock runs the compiled
// taps.
type MatrixDecoder struct {
	order    int
	channels int
	state    State

	matrix [][]float64
	graph  *graph.Graph
	taps   [][]tap

	connections int
	scratch     []float64
}

func NewMatrixDecoder(order, maxBlock int) (*MatrixDecoder, error) {
	channels, err := ambisonic.ChannelCount(order)
	if err != nil {
		return nil, err
	}

	return &MatrixDecoder{
		order:    order,
		channels: channels,
		graph:    graph.New(),
		scratch:  make([]float64, max(maxBlock, 1)),
	}, nil
}

func (d *MatrixDecoder) Kind() Kind   { return Matrix }
func (d *MatrixDecoder) State() State { return d.state }
func (d *MatrixDecoder) Inputs() int  { return d.channels }
func (d *MatrixDecoder) Outputs() int { return len(d.matrix) }

func (d *MatrixDecoder) SpeakerCount() int { return len(d.matrix) }

// Connections is the number of logical (channel, speaker) connections made
// by Build, zero gains included.
func (d *MatrixDecoder) Connections() int { return d.connections }

// Graph exposes the wiring recorded by Build.
func (d *MatrixDecoder) Graph() *graph.Graph { return d.graph }

// Load parses doc. On error the decoder is left unconfigured.
func (d *MatrixDecoder) Load(doc []byte) (int, error) {
	d.Reset()

	m, err := ParseMatrix(doc, d.channels)
	if err != nil {
		return 0, err
	}

	d.matrix = m
	d.state = Configured
	return len(m), nil
}

// LoadFrom fetches the document at rawURL and loads it.
func (d *MatrixDecoder) LoadFrom(ctx context.Context, f fetch.Fetcher, rawURL string) (int, error) {
	doc, err := fetch.ReadAll(ctx, f, rawURL)
	if err != nil {
		return 0, fmt.Errorf("decode matrix %s: %w", rawURL, err)
	}

	n, err := d.Load(doc)
	if err != nil {
		return 0, fmt.Errorf("decode matrix %s: %w", rawURL, err)
	}
	return n, nil
}

// Build declares the speaker count to dest and wires the gain matrix. A
// capacity failure leaves nothing connected and the decoder Configured.
func (d *MatrixDecoder) Build(dest Capacity) error {
	if d.state == Unconfigured {
		return ErrNotConfigured
	}
	if d.state == Built {
		d.release()
		d.state = Configured
	}

	speakers := len(d.matrix)
	if err := checkCapacity(dest, speakers); err != nil {
		return err
	}

	split := d.graph.AddSplitter("decoder-in", d.channels)
	merge := d.graph.AddMerger("decoder-out", speakers)

	edges := make([]graph.Edge, 0, 2*d.channels*speakers)
	for c := range d.channels {
		for s := range speakers {
			g := d.matrix[s][c]
			if g == 0 {
				continue
			}
			id := d.graph.AddGain(fmt.Sprintf("gain-%d-%d", c, s), 1, g)
			edges = append(edges,
				graph.Edge{From: split, Output: c, To: id, Input: 0},
				graph.Edge{From: id, Output: 0, To: merge, Input: s},
			)
		}
	}
	if err := d.graph.ConnectAll(edges); err != nil {
		d.release()
		return fmt.Errorf("wire decoder: %w", err)
	}

	d.compile(merge, speakers)
	d.connections = d.channels * speakers
	d.state = Built
	return nil
}

// compile walks the recorded gain nodes into per-speaker taps.
func (d *MatrixDecoder) compile(merge graph.NodeID, speakers int) {
	d.taps = make([][]tap, speakers)
	for _, in := range d.graph.Incoming(merge) {
		n, _ := d.graph.Node(in.From)
		for _, e := range d.graph.Incoming(n.ID) {
			d.taps[in.Input] = append(d.taps[in.Input], tap{channel: e.Output, gain: n.Gain})
		}
	}
}

func (d *MatrixDecoder) release() {
	d.graph.Release()
	d.taps = nil
	d.connections = 0
}

// Reset returns the decoder to Unconfigured.
func (d *MatrixDecoder) Reset() {
	d.release()
	d.matrix = nil
	d.state = Unconfigured
}

// ProcessBlock computes dst[s] = sum over c of gain[c][s]*src[c]. Before
// Build the output is silence.
func (d *MatrixDecoder) ProcessBlock(dst, src [][]float64) {
	for s := range dst {
		block.Zero(dst[s])
		if s >= len(d.taps) {
			continue
		}
		for _, t := range d.taps[s] {
			block.MulAcc(dst[s], src[t.channel], d.scratch, t.gain)
		}
	}
}
