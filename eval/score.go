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
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/dataset"
)

// PrecisionAtK is the fraction of hits over the whole sequence. The empty
// sequence has no defined precision and returns an error.
func PrecisionAtK(hits []bool) (float32, error) {
	if len(hits) == 0 {
		return 0, errors.New("precision of an empty sequence is undefined")
	}
	count := 0
	for _, hit := range hits {
		if hit {
			count++
		}
	}
	return float32(count) / float32(len(hits)), nil
}

// APAtK sums the prefix precision at every hit position and divides by the
// total sequence length. Dividing by length rather than by the hit count
// keeps scores comparable across rank depths and matches the usual MAP@k
// convention for recommendation benchmarks. The empty sequence scores 0.
func APAtK(hits []bool) float32 {
	if len(hits) == 0 {
		return 0
	}
	var sum float32
	count := 0
	for i, hit := range hits {
		if hit {
			count++
			sum += float32(count) / float32(i+1)
		}
	}
	return sum / float32(len(hits))
}

// MAPAtK is the arithmetic mean of APAtK over all sequences.
func MAPAtK(sequences [][]bool) (float32, error) {
	if len(sequences) == 0 {
		return 0, errors.New("mean average precision of an empty batch is undefined")
	}
	var sum float32
	for _, hits := range sequences {
		sum += APAtK(hits)
	}
	return sum / float32(len(sequences)), nil
}

// Relevant inner-joins predictions with the ground truth on customer id and
// applies the similarity to each remaining customer's ranked list. Customers
// absent from either side are dropped. Rows come back in ascending customer
// id order.
func Relevant(predictions map[string]string, relevant *dataset.RelevantSet, similarity Similarity) [][]bool {
	customerIDs := make([]string, 0, len(predictions))
	for customerID := range predictions {
		if _, ok := relevant.Target(customerID); ok {
			customerIDs = append(customerIDs, customerID)
		}
	}
	sort.Strings(customerIDs)
	sequences := make([][]bool, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		// Fields maps an empty prediction to an empty hit sequence.
		predicted := strings.Fields(predictions[customerID])
		targets := relevant.TargetItems(customerID)
		sequences = append(sequences, similarity.CompareOne(predicted, targets))
	}
	return sequences
}

// Score evaluates a prediction batch end to end and returns its MAP@k.
func Score(predictions map[string]string, relevant *dataset.RelevantSet, similarity Similarity) (float32, error) {
	sequences := Relevant(predictions, relevant, similarity)
	score, err := MAPAtK(sequences)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return score, nil
}
