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

package base

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultSeed keeps every randomized step reproducible unless a caller
// injects its own generator.
const DefaultSeed = 42

// RandomGenerator is the random generator for retailrec.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// SampleStrings samples n strings from candidates, but not in exclude.
func (rng RandomGenerator) SampleStrings(candidates []string, n int, exclude ...mapset.Set[string]) []string {
	excludeSet := mapset.NewSet[string]()
	for _, set := range exclude {
		excludeSet = excludeSet.Union(set)
	}
	sampled := make([]string, 0, n)
	for _, i := range rng.Perm(len(candidates)) {
		if len(sampled) >= n {
			break
		}
		if !excludeSet.Contains(candidates[i]) {
			sampled = append(sampled, candidates[i])
			excludeSet.Add(candidates[i])
		}
	}
	return sampled
}

// SplitStrings shuffles ids and splits them into a head of size
// len(ids)*(1-fraction) and a tail holding the rest. The two sides are
// disjoint and cover the input exactly.
func (rng RandomGenerator) SplitStrings(ids []string, fraction float64) (head, tail []string) {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	testSize := int(float64(len(shuffled)) * fraction)
	return shuffled[testSize:], shuffled[:testSize]
}
