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
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/retailrec-io/retailrec/base"
	"github.com/stretchr/testify/assert"
)

func TestCustomerPortion(t *testing.T) {
	d := newTestDataset()
	portion := NewCustomerPortion([]string{"c1", "c4"})
	sub := portion.Split(d)
	// transactions are only the requested customers' rows
	for _, tr := range sub.Transactions {
		assert.Equal(t, "c1", tr.CustomerID)
	}
	assert.Len(t, sub.Transactions, 4)
	// items are pruned by transaction reference
	itemIDs := ItemIDSet(sub.Transactions)
	assert.Len(t, sub.Items, itemIDs.Cardinality())
	// customers are pruned to the requested ids: c4 has no transactions but
	// was requested, so it stays
	assert.Len(t, sub.Customers, 2)
	ids := []string{sub.Customers[0].ID, sub.Customers[1].ID}
	assert.ElementsMatch(t, []string{"c1", "c4"}, ids)
}

func TestSplitByCustomerTrainTest(t *testing.T) {
	d := newTestDataset()
	rng := base.NewRandomGenerator(base.DefaultSeed)
	train, test := SplitByCustomerTrainTest(d, 0.34, rng)
	trainIDs := CustomerIDSet(train.Transactions)
	testIDs := CustomerIDSet(test.Transactions)
	assert.Equal(t, 0, trainIDs.Intersect(testIDs).Cardinality())
	assert.True(t, CustomerIDSet(d.Transactions).Equal(trainIDs.Union(testIDs)))
}

func TestSplitByCustomerTrainTestValidation(t *testing.T) {
	items := make([]Item, 0)
	customers := make([]Customer, 0, 10)
	transactions := make([]Transaction, 0, 10)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		customers = append(customers, Customer{ID: id})
		items = append(items, Item{ID: id})
		transactions = append(transactions, Transaction{
			Date: date("2023-09-01"), CustomerID: id, ItemID: id,
		})
	}
	d := NewDataset(items, customers, transactions)
	rng := base.NewRandomGenerator(base.DefaultSeed)
	train, test, validation := SplitByCustomerTrainTestValidation(d, 0.2, rng)
	// test takes 20% of the universe; validation takes the same absolute
	// share carved out of the remainder: 8 * 0.25 = 2
	assert.Len(t, test.Customers, 2)
	assert.Len(t, validation.Customers, 2)
	assert.Len(t, train.Customers, 6)
	sets := []mapset.Set[string]{
		CustomerIDSet(train.Transactions),
		CustomerIDSet(test.Transactions),
		CustomerIDSet(validation.Transactions),
	}
	union := mapset.NewSet[string]()
	for i, s := range sets {
		for j := i + 1; j < len(sets); j++ {
			assert.Equal(t, 0, s.Intersect(sets[j]).Cardinality())
		}
		union = union.Union(s)
	}
	assert.True(t, CustomerIDSet(d.Transactions).Equal(union))
}
