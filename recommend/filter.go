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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/retailrec-io/retailrec/dataset"
)

// DefaultMinCatalog is the smallest filtered catalog the neighbor engine
// accepts by default. A catalog smaller than this makes nearest-neighbor
// retrieval degenerate.
const DefaultMinCatalog = 100

// FilterItemsByFrequency keeps the items purchased strictly more than
// threshold times in the transaction window.
func FilterItemsByFrequency(transactions []dataset.Transaction, threshold int) mapset.Set[string] {
	counts := make(map[string]int)
	for _, t := range transactions {
		counts[t.ItemID]++
	}
	filtered := mapset.NewThreadUnsafeSet[string]()
	for itemID, count := range counts {
		if count > threshold {
			filtered.Add(itemID)
		}
	}
	return filtered
}
