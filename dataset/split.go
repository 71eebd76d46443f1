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

package dataset

import (
	"time"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/base/log"
	"go.uber.org/zap"
)

// DefaultTargetWindowDays is the width of the held-out target window.
const DefaultTargetWindowDays = 7

// SplitByTime partitions transactions by a cutoff computed backwards from the
// latest transaction date. older holds rows strictly before the cutoff, newer
// holds rows at or after it. Every row lands in exactly one side.
func SplitByTime(transactions []Transaction, days int) (older, newer []Transaction, err error) {
	if len(transactions) == 0 {
		return nil, nil, errors.New("cannot split an empty transaction set by time")
	}
	var last time.Time
	for _, t := range transactions {
		if t.Date.After(last) {
			last = t.Date
		}
	}
	cutoff := last.AddDate(0, 0, -days)
	for _, t := range transactions {
		if t.Date.Before(cutoff) {
			older = append(older, t)
		} else {
			newer = append(newer, t)
		}
	}
	return older, newer, nil
}

// Strategy selects how a dataset is folded into train, validation and test
// partitions.
type Strategy int

const (
	// TwoSets carves a target window off the transaction log, then splits
	// customers into train and test sides for both windows.
	TwoSets Strategy = iota
	// ThreeSets additionally carves a validation customer portion out of the
	// non-test remainder. The validation fraction is adjusted so that its
	// absolute share of the total matches the requested fraction.
	ThreeSets
	// Standard leaves the last window as target and re-applies the time split
	// to the remainder, producing a nested validation target window.
	Standard
)

// Split is the folded view of a dataset. Only the slices produced by the
// chosen strategy are populated.
type Split struct {
	Strategy Strategy

	// TransactionsX and TransactionsY is the initial time partition.
	TransactionsX []Transaction
	TransactionsY []Transaction

	TrainX []Transaction
	TrainY []Transaction
	TestX  []Transaction
	TestY  []Transaction
	ValX   []Transaction
	ValY   []Transaction
	// TrainVY is the nested validation target window of the Standard strategy.
	TrainVY []Transaction

	// Relevant is the ground truth built from the target window.
	Relevant *RelevantSet
}

// SplitOptions carries the tunables of NewSplit.
type SplitOptions struct {
	Days     int
	Fraction float64
	Random   base.RandomGenerator
}

func defaultSplitOptions() SplitOptions {
	return SplitOptions{
		Days:     DefaultTargetWindowDays,
		Fraction: 0.2,
		Random:   base.NewRandomGenerator(base.DefaultSeed),
	}
}

// SplitOption mutates SplitOptions.
type SplitOption func(*SplitOptions)

func WithDays(days int) SplitOption {
	return func(o *SplitOptions) { o.Days = days }
}

func WithFraction(fraction float64) SplitOption {
	return func(o *SplitOptions) { o.Fraction = fraction }
}

func WithRandom(rng base.RandomGenerator) SplitOption {
	return func(o *SplitOptions) { o.Random = rng }
}

// NewSplit folds a dataset by the chosen strategy. The dataset itself is left
// untouched; the returned Split borrows its transaction rows.
func NewSplit(d *Dataset, strategy Strategy, opts ...SplitOption) (*Split, error) {
	options := defaultSplitOptions()
	for _, opt := range opts {
		opt(&options)
	}
	x, y, err := SplitByTime(d.Transactions, options.Days)
	if err != nil {
		return nil, errors.Trace(err)
	}
	split := &Split{
		Strategy:      strategy,
		TransactionsX: x,
		TransactionsY: y,
		Relevant:      TargetToRelevant(y),
	}
	switch strategy {
	case TwoSets:
		idsTrain, idsTest := SplitIDs(d.Transactions, options.Fraction, options.Random)
		split.TrainX, split.TestX = TransactionsTrainTest(x, idsTrain, idsTest)
		split.TrainY, split.TestY = TransactionsTrainTest(y, idsTrain, idsTest)
	case ThreeSets:
		idsTrain, idsTest := SplitIDs(d.Transactions, options.Fraction, options.Random)
		trainX, testX := TransactionsTrainTest(x, idsTrain, idsTest)
		trainY, testY := TransactionsTrainTest(y, idsTrain, idsTest)
		split.TestX, split.TestY = testX, testY
		// The validation share of the remainder is scaled up so its absolute
		// share of the whole equals the requested fraction.
		remainderFraction := options.Fraction / (1 - options.Fraction)
		idsTrain, idsVal := SplitIDs(trainX, remainderFraction, options.Random)
		split.TrainX, split.ValX = TransactionsTrainTest(trainX, idsTrain, idsVal)
		split.TrainY, split.ValY = TransactionsTrainTest(trainY, idsTrain, idsVal)
	case Standard:
		split.TrainY = y
		split.TrainX, split.TrainVY, err = SplitByTime(x, options.Days)
		if err != nil {
			return nil, errors.Trace(err)
		}
	default:
		return nil, errors.Errorf("unknown split strategy: %v", strategy)
	}
	log.Logger().Debug("folded dataset",
		zap.Int("strategy", int(strategy)),
		zap.Int("transactions_x", len(split.TransactionsX)),
		zap.Int("transactions_y", len(split.TransactionsY)))
	return split, nil
}

// PartitionByTime splits a dataset into three consecutive datasets: the
// newest window of the requested width becomes y, the next window becomes vy
// and everything older becomes x. Each partition is pruned independently so
// its items and customers are exactly those referenced by its transactions.
func PartitionByTime(d *Dataset, days int) (x, vy, y *Dataset, err error) {
	older, newer, err := SplitByTime(d.Transactions, days)
	if err != nil {
		return nil, nil, nil, errors.Trace(err)
	}
	oldest, middle, err := SplitByTime(older, days)
	if err != nil {
		return nil, nil, nil, errors.Trace(err)
	}
	x = NewDataset(d.Items, d.Customers, oldest)
	vy = NewDataset(d.Items, d.Customers, middle)
	y = NewDataset(d.Items, d.Customers, newer)
	x.Prune()
	vy.Prune()
	y.Prune()
	return x, vy, y, nil
}

// Slice names the transaction window feeding a recommender.
type Slice int

const (
	TrainSlice Slice = iota
	ValidationSlice
	TestSlice
)

// Window returns the feature window of a slice.
func (s *Split) Window(slice Slice) []Transaction {
	switch slice {
	case ValidationSlice:
		if s.Strategy == Standard {
			return s.TrainX
		}
		return s.ValX
	case TestSlice:
		if s.Strategy == Standard {
			return s.TrainX
		}
		return s.TestX
	default:
		return s.TrainX
	}
}

// Target returns the ground truth window of a slice.
func (s *Split) Target(slice Slice) []Transaction {
	switch slice {
	case ValidationSlice:
		if s.Strategy == Standard {
			return s.TrainVY
		}
		return s.ValY
	case TestSlice:
		if s.Strategy == Standard {
			return s.TrainY
		}
		return s.TestY
	default:
		return s.TrainY
	}
}
