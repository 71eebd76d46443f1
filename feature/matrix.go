// Copyright 2023 retailrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feature

import (
	"encoding/binary"
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
)

// Matrix is an item feature matrix: one row per item, indexed by item id.
// Consumers look rows up by id, never by position, so a filtered matrix can
// never silently misalign with its catalog. A matrix is immutable after
// construction and safe for concurrent reads.
type Matrix struct {
	columns []string
	ids     []string
	index   map[string]int
	rows    [][]float32
}

// NewMatrix builds a matrix from parallel id and row slices.
func NewMatrix(ids []string, columns []string, rows [][]float32) (*Matrix, error) {
	if len(ids) != len(rows) {
		return nil, errors.Errorf("row count mismatch: %d ids, %d rows", len(ids), len(rows))
	}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, exists := index[id]; exists {
			return nil, errors.Errorf("duplicate item id: %s", id)
		}
		index[id] = i
		if len(rows[i]) != len(columns) {
			return nil, errors.Errorf("row %d has %d values, want %d", i, len(rows[i]), len(columns))
		}
	}
	return &Matrix{
		columns: columns,
		ids:     ids,
		index:   index,
		rows:    rows,
	}, nil
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	return len(m.ids)
}

// Dimension returns the number of feature columns.
func (m *Matrix) Dimension() int {
	return len(m.columns)
}

// Columns returns the feature column names.
func (m *Matrix) Columns() []string {
	return m.columns
}

// IDs returns the item ids in row order.
func (m *Matrix) IDs() []string {
	return m.ids
}

// ID returns the item id of a row position.
func (m *Matrix) ID(i int) string {
	return m.ids[i]
}

// Row returns the feature row of an item id.
func (m *Matrix) Row(id string) ([]float32, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return m.rows[i], true
}

// RowAt returns the feature row of a row position.
func (m *Matrix) RowAt(i int) []float32 {
	return m.rows[i]
}

// Subset returns a matrix restricted to the given item ids, preserving the
// catalog row order. Ids absent from the matrix are skipped.
func (m *Matrix) Subset(ids mapset.Set[string]) *Matrix {
	sub := &Matrix{
		columns: m.columns,
		index:   make(map[string]int),
	}
	for i, id := range m.ids {
		if ids.Contains(id) {
			sub.index[id] = len(sub.ids)
			sub.ids = append(sub.ids, id)
			sub.rows = append(sub.rows, m.rows[i])
		}
	}
	return sub
}

// DropDuplicateRows removes identical feature rows, keeping the first
// occurrence of each.
func DropDuplicateRows(rows [][]float32) [][]float32 {
	seen := mapset.NewThreadUnsafeSet[string]()
	deduped := make([][]float32, 0, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		if !seen.Contains(key) {
			seen.Add(key)
			deduped = append(deduped, row)
		}
	}
	return deduped
}

func rowKey(row []float32) string {
	buf := make([]byte, 4*len(row))
	for i, v := range row {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return string(buf)
}
