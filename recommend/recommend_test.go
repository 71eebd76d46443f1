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
	"testing"

	"github.com/retailrec-io/retailrec/dataset"
	"github.com/retailrec-io/retailrec/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransactions() []dataset.Transaction {
	return []dataset.Transaction{
		{CustomerID: "c1", ItemID: "01"},
		{CustomerID: "c1", ItemID: "04"},
		{CustomerID: "c2", ItemID: "01"},
		{CustomerID: "c9", ItemID: "01"},
		{CustomerID: "c9", ItemID: "02"},
		{CustomerID: "c9", ItemID: "03"},
		{CustomerID: "c9", ItemID: "03"},
		{CustomerID: "c9", ItemID: "04"},
		{CustomerID: "c9", ItemID: "05"},
		{CustomerID: "c9", ItemID: "06"},
	}
}

func newTestFeatures(t *testing.T) *feature.Matrix {
	matrix, err := feature.NewMatrix(
		[]string{"01", "02", "03", "04", "05", "06"},
		[]string{"x", "y"},
		[][]float32{
			{1, 0},
			{0.9, 0},
			{0.8, 0.1},
			{0, 1},
			{0, 0.9},
			{0.1, 0.8},
		})
	require.NoError(t, err)
	return matrix
}

func TestPopularity(t *testing.T) {
	p := NewPopularity(newTestTransactions(), 3)
	// counts: 01 purchased 3 times, 03 twice, 04 twice, the rest once;
	// the 03/04 tie breaks by ascending id
	items, err := p.Recommend("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "03", "04"}, items)
	// cold-start customers get the same list
	cold, err := p.Recommend("nobody")
	require.NoError(t, err)
	assert.Equal(t, items, cold)
}

func TestPopularityFewerItemsThanRequested(t *testing.T) {
	p := NewPopularity([]dataset.Transaction{{CustomerID: "c1", ItemID: "01"}}, 5)
	items, err := p.Recommend("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"01"}, items)
}

func TestFilterItemsByFrequency(t *testing.T) {
	filtered := FilterItemsByFrequency(newTestTransactions(), 1)
	assert.Equal(t, 3, filtered.Cardinality())
	assert.True(t, filtered.Contains("01"))
	assert.True(t, filtered.Contains("03"))
	assert.True(t, filtered.Contains("04"))
}

func TestKNNRecommend(t *testing.T) {
	engine, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(0))
	require.NoError(t, err)

	// two taste centroids, two neighbors each
	items, err := engine.Recommend("c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"01", "02", "04", "05"}, items)

	// deterministic across calls
	again, err := engine.Recommend("c1")
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestKNNUnderDelivery(t *testing.T) {
	engine, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(0))
	require.NoError(t, err)
	// a single basket row collapses to one centroid, so the list is short
	items, err := engine.Recommend("c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02"}, items)
}

func TestKNNEmptyBasket(t *testing.T) {
	engine, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(0))
	require.NoError(t, err)
	items, err := engine.Recommend("c3")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestKNNMinCatalogGuard(t *testing.T) {
	_, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4)
	assert.Error(t, err)
	_, err = NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(6))
	assert.NoError(t, err)
}

func TestKNNThreshold(t *testing.T) {
	// threshold 1 keeps only items purchased at least twice: 01, 03, 04
	engine, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(0), WithThreshold(1))
	require.NoError(t, err)
	items, err := engine.Recommend("c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"01", "03", "04", "03"}, items)
}

func TestRecommendAll(t *testing.T) {
	engine, err := NewKNN(newTestTransactions(), newTestFeatures(t), 2, 4,
		WithMinCatalog(0))
	require.NoError(t, err)
	predictions, err := engine.RecommendAll([]string{"c1", "c2", "c3"})
	require.NoError(t, err)
	require.Len(t, predictions, 3)
	assert.Equal(t, "01 02", predictions["c2"])
	assert.Equal(t, "", predictions["c3"])

	// parallel fan-out reproduces the sequential result
	sequential, err := engine.Recommend("c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, sequential, []string{"01", "02", "04", "05"})

	again, err := engine.RecommendAll([]string{"c1", "c2", "c3"})
	require.NoError(t, err)
	assert.Equal(t, predictions, again)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "popularity", PopularityKind.String())
	assert.Equal(t, "knn", KNNKind.String())
}

func TestKNNDropDuplicatesDefault(t *testing.T) {
	// repeat purchases collapse to one taste centroid by default
	transactions := []dataset.Transaction{
		{CustomerID: "c1", ItemID: "01"},
		{CustomerID: "c1", ItemID: "01"},
		{CustomerID: "c9", ItemID: "02"},
	}
	engine, err := NewKNN(transactions, newTestFeatures(t), 2, 4,
		WithMinCatalog(0))
	require.NoError(t, err)
	items, err := engine.Recommend("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02"}, items)
}
