// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ik5/hoapbx/ambisonic"
)

// document is the subset of an AllRADecoder/JSAmbisonics decoder file that
// is used here.
type document struct {
	Name    string `json:"Name"`
	Decoder *struct {
		Name                       string      `json:"Name"`
		ExpectedInputNormalization string      `json:"ExpectedInputNormalization"`
		Matrix                     [][]float64 `json:"Matrix"`
	} `json:"Decoder"`
}

// ParseMatrix reads a decode document and returns its matrix, rows are
// speakers and columns are ACN channels in SN3D. Matrices declaring N3D
// input are rescaled to SN3D; any other normalization is used as given.
func ParseMatrix(doc []byte, channels int) ([][]float64, error) {
	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if d.Decoder == nil {
		return nil, fmt.Errorf("%w: missing Decoder object", ErrSchema)
	}
	if len(d.Decoder.Matrix) == 0 {
		return nil, fmt.Errorf("%w: empty Decoder.Matrix", ErrSchema)
	}

	for s, row := range d.Decoder.Matrix {
		if len(row) != channels {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrDimensionMismatch, s, len(row), channels)
		}
	}

	if strings.EqualFold(d.Decoder.ExpectedInputNormalization, "n3d") {
		for _, row := range d.Decoder.Matrix {
			for c := range row {
				l, _ := ambisonic.Degree(c)
				row[c] *= math.Sqrt(float64(2*l + 1))
			}
		}
	}

	return d.Decoder.Matrix, nil
}
