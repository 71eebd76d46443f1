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

// Package recommend generates ranked article recommendations per customer.
package recommend

import (
	"runtime"
	"strings"
	"sync"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base/parallel"
	"github.com/schollz/progressbar/v3"
)

func runtimeWorkers() int {
	return runtime.NumCPU()
}

// Recommender produces an ordered list of item ids for a customer.
type Recommender interface {
	// Recommend returns item ids in rank order. A customer without history
	// gets whatever the variant can offer, possibly nothing, never an error.
	Recommend(customerID string) ([]string, error)
	// RecommendAll maps each customer id to a space-joined prediction string.
	RecommendAll(customerIDs []string) (map[string]string, error)
}

// Kind selects a recommender variant at construction time.
type Kind int

const (
	PopularityKind Kind = iota
	KNNKind
)

func (k Kind) String() string {
	switch k {
	case PopularityKind:
		return "popularity"
	case KNNKind:
		return "knn"
	default:
		return "unknown"
	}
}

// recommendAll fans Recommend out over a worker pool. Per-customer work is
// independent and all shared state is read-only, so workers never contend.
func recommendAll(r Recommender, customerIDs []string, nWorkers int) (map[string]string, error) {
	bar := progressbar.Default(int64(len(customerIDs)), "recommend")
	predictions := make(map[string]string, len(customerIDs))
	var mu sync.Mutex
	err := parallel.Parallel(len(customerIDs), nWorkers, func(_, jobId int) error {
		customerID := customerIDs[jobId]
		items, err := r.Recommend(customerID)
		if err != nil {
			return errors.Trace(err)
		}
		mu.Lock()
		predictions[customerID] = strings.Join(items, " ")
		mu.Unlock()
		_ = bar.Add(1)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return predictions, nil
}
