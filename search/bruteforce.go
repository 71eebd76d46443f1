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

package search

import (
	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base/floats"
	"github.com/retailrec-io/retailrec/base/heap"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Bruteforce is a naive exact nearest neighbor index. Vectors are added once
// during construction; afterwards the index is read-only and safe for
// concurrent searches.
type Bruteforce struct {
	distanceFunc func(a, b []float32) float32
	dimension    int
	vectors      [][]float32
}

// NewBruteforce creates an empty index with a distance function.
func NewBruteforce(distanceFunc func(a, b []float32) float32) *Bruteforce {
	return &Bruteforce{distanceFunc: distanceFunc}
}

// NewEuclidean creates an index over Euclidean distance, the metric used for
// one-hot item features.
func NewEuclidean() *Bruteforce {
	return NewBruteforce(floats.Euclidean)
}

// Add appends a vector and returns its position.
func (b *Bruteforce) Add(v []float32) (int, error) {
	// Check dimension
	if b.dimension == 0 {
		b.dimension = len(v)
	} else if b.dimension != len(v) {
		return 0, errors.Errorf("dimension mismatch: %v != %v", b.dimension, len(v))
	}
	// Add vector
	b.vectors = append(b.vectors, v)
	return len(b.vectors) - 1, nil
}

// Len returns the number of indexed vectors.
func (b *Bruteforce) Len() int {
	return len(b.vectors)
}

// Search returns the k indexed vectors closest to the query, nearest first.
// Ties break by the heap's internal order, deterministic for fixed input.
// Requesting more neighbors than indexed rows returns everything and logs a
// diagnostic.
func (b *Bruteforce) Search(q []float32, k int) ([]lo.Tuple2[int, float32], error) {
	if len(q) != b.dimension {
		return nil, errors.Errorf("dimension mismatch: %v != %v", b.dimension, len(q))
	}
	if k > len(b.vectors) {
		log.Logger().Warn("more neighbors requested than indexed vectors",
			zap.Int("k", k),
			zap.Int("vectors", len(b.vectors)))
	}
	pq := heap.NewPriorityQueue(true)
	for i, vec := range b.vectors {
		pq.Push(int32(i), b.distanceFunc(q, vec))
		if pq.Len() > k {
			pq.Pop()
		}
	}
	pq = pq.Reverse()
	scores := make([]lo.Tuple2[int, float32], 0, pq.Len())
	for pq.Len() > 0 {
		value, score := pq.Pop()
		scores = append(scores, lo.Tuple2[int, float32]{A: int(value), B: score})
	}
	return scores, nil
}
