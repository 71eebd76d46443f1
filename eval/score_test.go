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
	"testing"

	"github.com/retailrec-io/retailrec/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-6

func TestPrecisionAtK(t *testing.T) {
	hits := []bool{false, true, false, true, true}
	p, err := PrecisionAtK(hits[:2])
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, epsilon)
	p, err = PrecisionAtK(hits)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, p, epsilon)
	_, err = PrecisionAtK(nil)
	assert.Error(t, err)
}

func TestAPAtK(t *testing.T) {
	assert.InDelta(t, (0.5+2.0/4+3.0/5)/5, APAtK([]bool{false, true, false, true, true}), epsilon)
	for n := 1; n <= 5; n++ {
		allTrue := make([]bool, n)
		for i := range allTrue {
			allTrue[i] = true
		}
		assert.InDelta(t, 1.0, APAtK(allTrue), epsilon)
		assert.Zero(t, APAtK(make([]bool, n)))
	}
	assert.Zero(t, APAtK(nil))
}

func TestMAPAtK(t *testing.T) {
	sequences := [][]bool{
		{true, true},
		{false, false},
		{false, true, false, true, true},
	}
	mean, err := MAPAtK(sequences)
	require.NoError(t, err)
	assert.InDelta(t, (1.0+0.0+(0.5+2.0/4+3.0/5)/5)/3, mean, epsilon)
	_, err = MAPAtK(nil)
	assert.Error(t, err)
}

func TestRelevantInnerJoin(t *testing.T) {
	relevant, err := dataset.NewRelevantSet(
		[]string{"c1", "c2", "c3"},
		[]string{"01 02", "03", "04"})
	require.NoError(t, err)
	predictions := map[string]string{
		"c1": "02 05",
		"c3": "04",
		"c9": "01", // not in the ground truth, dropped
	}
	sequences := Relevant(predictions, relevant, NewIdenticalSimilarity())
	require.Len(t, sequences, 2)
	assert.Equal(t, []bool{true, false}, sequences[0])
	assert.Equal(t, []bool{true}, sequences[1])
}

func TestRelevantEmptyPrediction(t *testing.T) {
	relevant, err := dataset.NewRelevantSet([]string{"c1"}, []string{"01"})
	require.NoError(t, err)
	sequences := Relevant(map[string]string{"c1": ""}, relevant, NewIdenticalSimilarity())
	require.Len(t, sequences, 1)
	assert.Empty(t, sequences[0])
}

func TestScore(t *testing.T) {
	relevant, err := dataset.NewRelevantSet(
		[]string{"c1", "c2"},
		[]string{"01 02", "03"})
	require.NoError(t, err)
	predictions := map[string]string{
		"c1": "01 02",
		"c2": "04",
	}
	score, err := Score(predictions, relevant, NewIdenticalSimilarity())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, epsilon)
}
