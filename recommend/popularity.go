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
	"sort"

	"github.com/retailrec-io/retailrec/base/heap"
	"github.com/retailrec-io/retailrec/dataset"
)

// Popularity recommends the globally best selling items to every customer,
// ignoring their history. Cold-start customers get the same list as everyone
// else, no special casing needed.
type Popularity struct {
	topItems []string
}

// NewPopularity ranks items by transaction count, most purchased first, ties
// broken by ascending item id, and keeps the top totalRecommendations.
func NewPopularity(transactions []dataset.Transaction, totalRecommendations int) *Popularity {
	counts := make(map[string]int)
	itemIDs := make([]string, 0)
	for _, t := range transactions {
		if _, seen := counts[t.ItemID]; !seen {
			itemIDs = append(itemIDs, t.ItemID)
		}
		counts[t.ItemID]++
	}
	filter := heap.NewTopKFilter[string, int](totalRecommendations)
	for _, itemID := range itemIDs {
		filter.Push(itemID, counts[itemID])
	}
	topItems, _ := filter.PopAll()
	sort.Slice(topItems, func(i, j int) bool {
		if counts[topItems[i]] != counts[topItems[j]] {
			return counts[topItems[i]] > counts[topItems[j]]
		}
		return topItems[i] < topItems[j]
	})
	return &Popularity{topItems: topItems}
}

func (p *Popularity) Recommend(_ string) ([]string, error) {
	items := make([]string, len(p.topItems))
	copy(items, p.topItems)
	return items, nil
}

func (p *Popularity) RecommendAll(customerIDs []string) (map[string]string, error) {
	return recommendAll(p, customerIDs, runtimeWorkers())
}
