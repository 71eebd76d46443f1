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

package eval

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/dataset"
	"go.uber.org/zap"
)

// Similarity decides whether a predicted item counts as a hit against the
// ground truth.
type Similarity interface {
	// Similar reports whether two item ids match under the predicate.
	Similar(a, b string) bool
	// CompareOne returns one flag per predicted id: true iff the id is
	// similar to any id in targets.
	CompareOne(predicted, targets []string) []bool
}

// IdenticalSimilarity matches items by exact id only.
type IdenticalSimilarity struct{}

func NewIdenticalSimilarity() IdenticalSimilarity {
	return IdenticalSimilarity{}
}

func (IdenticalSimilarity) Similar(a, b string) bool {
	return a == b
}

// CompareOne short-circuits to set membership, no pairwise scan needed.
func (IdenticalSimilarity) CompareOne(predicted, targets []string) []bool {
	targetSet := mapset.NewThreadUnsafeSet(targets...)
	result := make([]bool, len(predicted))
	for i, id := range predicted {
		result[i] = targetSet.Contains(id)
	}
	return result
}

// ColumnSimilarity matches items that share the value of one catalog column.
// Ids missing from the catalog never match.
type ColumnSimilarity struct {
	column string
	items  map[string]dataset.Item
}

func NewColumnSimilarity(column string, items []dataset.Item) *ColumnSimilarity {
	lookup := make(map[string]dataset.Item, len(items))
	for _, item := range items {
		lookup[item.ID] = item
	}
	return &ColumnSimilarity{column: column, items: lookup}
}

func (s *ColumnSimilarity) Similar(a, b string) bool {
	itemA, ok := s.items[a]
	if !ok {
		return false
	}
	itemB, ok := s.items[b]
	if !ok {
		return false
	}
	valueA, ok := itemA.Attribute(s.column)
	if !ok {
		return false
	}
	valueB, ok := itemB.Attribute(s.column)
	if !ok {
		return false
	}
	return valueA == valueB
}

func (s *ColumnSimilarity) CompareOne(predicted, targets []string) []bool {
	result := make([]bool, len(predicted))
	for i, p := range predicted {
		for _, t := range targets {
			if s.Similar(p, t) {
				result[i] = true
				break
			}
		}
	}
	return result
}

// GetSimilarity resolves a similarity by name: "identical" for exact id
// matching, or a catalog column name for attribute equality. Unknown names
// fall back to exact id matching.
func GetSimilarity(name string, items []dataset.Item) Similarity {
	switch name {
	case "identical", "":
		return NewIdenticalSimilarity()
	case "product_code", "product_type_no", "product_group_name",
		"graphical_appearance_no", "colour_group_code",
		"perceived_colour_value_id", "perceived_colour_master_id",
		"department_no", "index_code", "index_group_no",
		"section_no", "garment_group_no":
		return NewColumnSimilarity(name, items)
	default:
		log.Logger().Warn("unknown similarity, falling back to identical",
			zap.String("similarity", name))
		return NewIdenticalSimilarity()
	}
}
