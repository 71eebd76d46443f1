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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/retailrec-io/retailrec/base"
	"github.com/samber/lo"
)

// CustomerPortion cuts a dataset down to a requested customer-id set.
type CustomerPortion struct {
	customerIDs mapset.Set[string]
}

func NewCustomerPortion(customerIDs []string) *CustomerPortion {
	return &CustomerPortion{customerIDs: mapset.NewSet[string](customerIDs...)}
}

// Split returns a new dataset holding the transactions of the requested
// customers. Items are pruned to those referenced by the filtered
// transactions. Customers are pruned to the requested ids themselves: a
// requested customer without transactions is still retained.
func (p *CustomerPortion) Split(d *Dataset) *Dataset {
	transactions := lo.Filter(d.Transactions, func(t Transaction, _ int) bool {
		return p.customerIDs.Contains(t.CustomerID)
	})
	items := PruneItems(d.Items, transactions)
	customers := lo.Filter(d.Customers, func(c Customer, _ int) bool {
		return p.customerIDs.Contains(c.ID)
	})
	return NewDataset(items, customers, transactions)
}

// SplitIDs partitions the customer-id universe of a transaction slice into a
// train side of share 1-fraction and a test side of share fraction by a
// uniform random shuffle. The sides are disjoint and cover the universe.
func SplitIDs(transactions []Transaction, fraction float64, rng base.RandomGenerator) (idsTrain, idsTest []string) {
	return rng.SplitStrings(CustomerIDs(transactions), fraction)
}

// TransactionsTrainTest filters a transaction slice into the rows owned by
// each customer-id side, preserving row order.
func TransactionsTrainTest(transactions []Transaction, idsTrain, idsTest []string) (train, test []Transaction) {
	trainSet := mapset.NewSet[string](idsTrain...)
	testSet := mapset.NewSet[string](idsTest...)
	for _, t := range transactions {
		switch {
		case trainSet.Contains(t.CustomerID):
			train = append(train, t)
		case testSet.Contains(t.CustomerID):
			test = append(test, t)
		}
	}
	return
}

// SplitByCustomerTrainTest partitions a dataset into disjoint train and test
// datasets by customer id. The union of the two customer-id sets equals the
// customer-id universe of the dataset's transactions.
func SplitByCustomerTrainTest(d *Dataset, fraction float64, rng base.RandomGenerator) (train, test *Dataset) {
	idsTrain, idsTest := SplitIDs(d.Transactions, fraction, rng)
	train = NewCustomerPortion(idsTrain).Split(d)
	test = NewCustomerPortion(idsTest).Split(d)
	return
}

// SplitByCustomerTrainTestValidation partitions a dataset into three disjoint
// datasets by customer id. The test side takes the requested fraction of the
// universe; the validation side takes the same absolute fraction, carved out
// of the non-test remainder with an adjusted share.
func SplitByCustomerTrainTestValidation(d *Dataset, fraction float64, rng base.RandomGenerator) (train, test, validation *Dataset) {
	idsRemainder, idsTest := SplitIDs(d.Transactions, fraction, rng)
	test = NewCustomerPortion(idsTest).Split(d)
	remainderFraction := fraction / (1 - fraction)
	idsTrain, idsVal := rng.SplitStrings(idsRemainder, remainderFraction)
	train = NewCustomerPortion(idsTrain).Split(d)
	validation = NewCustomerPortion(idsVal).Split(d)
	return
}
