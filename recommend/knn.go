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

package recommend

import (
	"hash/fnv"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/cluster"
	"github.com/retailrec-io/retailrec/dataset"
	"github.com/retailrec-io/retailrec/feature"
	"github.com/retailrec-io/retailrec/search"
	"go.uber.org/zap"
)

// KNNOptions tune the neighbor engine. The zero threshold keeps every item
// purchased at least once in the window.
type KNNOptions struct {
	Threshold      int
	MinCatalog     int
	DropDuplicates bool
	Seed           int64
}

func defaultKNNOptions() KNNOptions {
	return KNNOptions{
		MinCatalog:     DefaultMinCatalog,
		DropDuplicates: true,
		Seed:           base.DefaultSeed,
	}
}

type KNNOption func(*KNNOptions)

// WithThreshold keeps only items purchased strictly more than threshold
// times.
func WithThreshold(threshold int) KNNOption {
	return func(o *KNNOptions) { o.Threshold = threshold }
}

// WithMinCatalog sets the smallest acceptable filtered catalog. Zero disables
// the guard.
func WithMinCatalog(minCatalog int) KNNOption {
	return func(o *KNNOptions) { o.MinCatalog = minCatalog }
}

// WithDropDuplicates deduplicates identical basket rows before clustering.
func WithDropDuplicates(dropDuplicates bool) KNNOption {
	return func(o *KNNOptions) { o.DropDuplicates = dropDuplicates }
}

// WithSeed sets the base seed for per-customer clustering.
func WithSeed(seed int64) KNNOption {
	return func(o *KNNOptions) { o.Seed = seed }
}

// KNN clusters a customer's purchase history into taste centroids and
// retrieves the nearest catalog items per centroid. All fields are read-only
// after construction, so a single instance serves concurrent customers.
type KNN struct {
	transactions   []dataset.Transaction
	features       *feature.Matrix
	catalog        *feature.Matrix
	index          *search.Bruteforce
	groups         int
	perGroup       int
	dropDuplicates bool
	seed           int64
}

// NewKNN builds the engine over a transaction window. The same window
// supplies the per-customer baskets and the frequency-filtered catalog that
// feeds the neighbor index. features must cover every item the window
// references.
func NewKNN(transactions []dataset.Transaction, features *feature.Matrix,
	groups, totalRecommendations int, opts ...KNNOption) (*KNN, error) {
	if groups < 1 {
		return nil, errors.Errorf("groups must be positive: %d", groups)
	}
	if totalRecommendations < 1 {
		return nil, errors.Errorf("total recommendations must be positive: %d", totalRecommendations)
	}
	options := defaultKNNOptions()
	for _, opt := range opts {
		opt(&options)
	}
	filtered := FilterItemsByFrequency(transactions, options.Threshold)
	if options.MinCatalog > 0 && filtered.Cardinality() < options.MinCatalog {
		return nil, errors.Errorf("filtered catalog has %d items, need at least %d",
			filtered.Cardinality(), options.MinCatalog)
	}
	catalog := features.Subset(filtered)
	index := search.NewEuclidean()
	for i := 0; i < catalog.Len(); i++ {
		if _, err := index.Add(catalog.RowAt(i)); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return &KNN{
		transactions:   transactions,
		features:       features,
		catalog:        catalog,
		index:          index,
		groups:         groups,
		perGroup:       (totalRecommendations + groups - 1) / groups,
		dropDuplicates: options.DropDuplicates,
		seed:           options.Seed,
	}, nil
}

// NewKNNForSlice builds the engine over one slice of a dataset split. The
// slice picks which transaction window supplies both the baskets and the
// catalog filter.
func NewKNNForSlice(split *dataset.Split, items []dataset.Item, slice dataset.Slice,
	groups, totalRecommendations int, opts ...KNNOption) (*KNN, error) {
	features, err := feature.OneHot(items, feature.DefaultColumns)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewKNN(split.Window(slice), features, groups, totalRecommendations, opts...)
}

// Recommend concatenates the perGroup nearest catalog items of each basket
// centroid, in centroid order. A customer whose basket rows are fewer than
// groups gets fewer clusters and thus a shorter list, which is expected.
// A customer with no transactions in the window gets an empty list.
func (k *KNN) Recommend(customerID string) ([]string, error) {
	rows := feature.CustomerBasket(k.transactions, customerID, k.features)
	if len(rows) == 0 {
		log.Logger().Debug("customer has no basket in window",
			zap.String("customer_id", customerID))
		return []string{}, nil
	}
	rng := base.NewRandomGenerator(k.customerSeed(customerID))
	centroids, err := cluster.FitBasket(rows, k.groups, k.dropDuplicates, rng)
	if err != nil {
		return nil, errors.Trace(err)
	}
	items := make([]string, 0, len(centroids)*k.perGroup)
	for _, centroid := range centroids {
		scores, err := k.index.Search(centroid, k.perGroup)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, score := range scores {
			items = append(items, k.catalog.ID(score.A))
		}
	}
	return items, nil
}

func (k *KNN) RecommendAll(customerIDs []string) (map[string]string, error) {
	return recommendAll(k, customerIDs, runtimeWorkers())
}

// customerSeed derives an independent deterministic seed per customer so a
// parallel RecommendAll reproduces the sequential results.
func (k *KNN) customerSeed(customerID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(customerID))
	return k.seed + int64(h.Sum64())
}

// NewRecommender constructs the variant selected by kind over one slice of a
// dataset split.
func NewRecommender(kind Kind, split *dataset.Split, items []dataset.Item, slice dataset.Slice,
	groups, totalRecommendations int, opts ...KNNOption) (Recommender, error) {
	switch kind {
	case PopularityKind:
		return NewPopularity(split.Window(slice), totalRecommendations), nil
	case KNNKind:
		return NewKNNForSlice(split, items, slice, groups, totalRecommendations, opts...)
	default:
		return nil, errors.Errorf("unknown recommender kind: %d", kind)
	}
}
