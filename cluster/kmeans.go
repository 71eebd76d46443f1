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

package cluster

import (
	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/base/floats"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/feature"
	"go.uber.org/zap"
	"modernc.org/mathutil"
)

const (
	// DefaultNumInit is the number of independent initializations; the run
	// with the lowest inertia wins.
	DefaultNumInit = 10
	// DefaultMaxIter bounds the Lloyd iterations of a single run.
	DefaultMaxIter = 300
)

// KMeans clusters feature rows into k centroids with k-means++ seeding.
// Rows are clustered as-is: one-hot indicator inputs must not be scaled,
// scaling would distort equal-weight categorical indicators.
type KMeans struct {
	k       int
	numInit int
	maxIter int
	rng     base.RandomGenerator
}

// KMeansOption mutates KMeans.
type KMeansOption func(*KMeans)

func WithNumInit(numInit int) KMeansOption {
	return func(km *KMeans) { km.numInit = numInit }
}

func WithMaxIter(maxIter int) KMeansOption {
	return func(km *KMeans) { km.maxIter = maxIter }
}

// NewKMeans creates a KMeans clusterer. All randomness comes from the passed
// generator so a fixed seed gives reproducible centroids.
func NewKMeans(k int, rng base.RandomGenerator, opts ...KMeansOption) *KMeans {
	km := &KMeans{
		k:       k,
		numInit: DefaultNumInit,
		maxIter: DefaultMaxIter,
		rng:     rng,
	}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Fit clusters rows and returns k centroids. It is a precondition violation
// to cluster an empty matrix or to request more clusters than rows.
func (km *KMeans) Fit(rows [][]float32) ([][]float32, error) {
	if len(rows) == 0 {
		return nil, errors.New("cannot cluster an empty feature matrix")
	}
	if km.k < 1 {
		return nil, errors.Errorf("invalid cluster count: %d", km.k)
	}
	if km.k > len(rows) {
		return nil, errors.Errorf("requested %d clusters over %d rows", km.k, len(rows))
	}
	var (
		bestCentroids [][]float32
		bestInertia   = float32(math32.MaxFloat32)
	)
	for run := 0; run < km.numInit; run++ {
		centroids, inertia := km.fitOnce(rows)
		if inertia < bestInertia {
			bestInertia = inertia
			bestCentroids = centroids
		}
	}
	log.Logger().Debug("k means converged",
		zap.Int("k", km.k),
		zap.Int("rows", len(rows)),
		zap.Float32("inertia", bestInertia))
	return bestCentroids, nil
}

func (km *KMeans) fitOnce(rows [][]float32) ([][]float32, float32) {
	centroids := km.seed(rows)
	assignments := make([]int, len(rows))
	for i := range assignments {
		assignments[i] = -1
	}
	for it := 0; it < km.maxIter; it++ {
		changes := 0
		for i, row := range rows {
			next := nearestCentroid(centroids, row)
			if next != assignments[i] {
				changes++
				assignments[i] = next
			}
		}
		centroids = recompute(rows, assignments, km.k)
		if changes == 0 {
			break
		}
	}
	var inertia float32
	for i, row := range rows {
		inertia += floats.SquaredEuclidean(row, centroids[assignments[i]])
	}
	return centroids, inertia
}

// seed picks the initial centroids with k-means++: the first uniformly, each
// following one with probability proportional to its squared distance to the
// closest centroid chosen so far.
func (km *KMeans) seed(rows [][]float32) [][]float32 {
	centroids := make([][]float32, 0, km.k)
	centroids = append(centroids, rows[km.rng.Intn(len(rows))])
	weights := make([]float32, len(rows))
	for len(centroids) < km.k {
		var total float32
		for i, row := range rows {
			weights[i] = floats.SquaredEuclidean(row, centroids[nearestCentroid(centroids, row)])
			total += weights[i]
		}
		if total == 0 {
			// all remaining rows coincide with a centroid
			centroids = append(centroids, rows[km.rng.Intn(len(rows))])
			continue
		}
		target := km.rng.Float32() * total
		var cumulative float32
		chosen := len(rows) - 1
		for i, w := range weights {
			cumulative += w
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, rows[chosen])
	}
	return centroids
}

func nearestCentroid(centroids [][]float32, row []float32) int {
	nearest, nearestDistance := 0, float32(math32.MaxFloat32)
	for c, centroid := range centroids {
		if d := floats.SquaredEuclidean(row, centroid); d < nearestDistance {
			nearest = c
			nearestDistance = d
		}
	}
	return nearest
}

func recompute(rows [][]float32, assignments []int, k int) [][]float32 {
	centroids := make([][]float32, k)
	counts := make([]int, k)
	for c := range centroids {
		centroids[c] = make([]float32, len(rows[0]))
	}
	for i, row := range rows {
		floats.AddTo(centroids[assignments[i]], row)
		counts[assignments[i]]++
	}
	for c := range centroids {
		if counts[c] > 0 {
			floats.MulConst(centroids[c], 1/float32(counts[c]))
		} else {
			// an empty cluster restarts from the row farthest to its centroid
			farthest, farthestDistance := 0, float32(0)
			for i, row := range rows {
				if d := floats.SquaredEuclidean(row, centroids[assignments[i]]); d > farthestDistance {
					farthest = i
					farthestDistance = d
				}
			}
			copy(centroids[c], rows[farthest])
		}
	}
	return centroids
}

// FitBasket clusters one customer's basket rows. When dropDuplicates is set,
// identical rows collapse first. The cluster count is clamped down to the
// number of available rows, so a small basket yields fewer centroids.
func FitBasket(rows [][]float32, groups int, dropDuplicates bool, rng base.RandomGenerator) ([][]float32, error) {
	if dropDuplicates {
		rows = feature.DropDuplicateRows(rows)
	}
	k := mathutil.Min(groups, len(rows))
	if k < groups {
		log.Logger().Debug("clamped basket cluster count",
			zap.Int("requested", groups),
			zap.Int("rows", len(rows)))
	}
	if len(rows) == 0 {
		return nil, errors.New("cannot cluster an empty basket")
	}
	return NewKMeans(k, rng).Fit(rows)
}
