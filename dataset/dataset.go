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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// Item is a catalog article. Ids are string typed to preserve leading zeros.
// Items are immutable once loaded.
type Item struct {
	ID                      string
	ProductCode             string
	ProductTypeNo           string
	ProductGroupName        string
	GraphicalAppearanceNo   string
	ColourGroupCode         string
	PerceivedColourValueID  string
	PerceivedColourMasterID string
	DepartmentNo            string
	IndexCode               string
	IndexGroupNo            string
	SectionNo               string
	GarmentGroupNo          string
}

// Attribute returns the categorical attribute stored under a column name.
func (i Item) Attribute(column string) (string, bool) {
	switch column {
	case "article_id":
		return i.ID, true
	case "product_code":
		return i.ProductCode, true
	case "product_type_no":
		return i.ProductTypeNo, true
	case "product_group_name":
		return i.ProductGroupName, true
	case "graphical_appearance_no":
		return i.GraphicalAppearanceNo, true
	case "colour_group_code":
		return i.ColourGroupCode, true
	case "perceived_colour_value_id":
		return i.PerceivedColourValueID, true
	case "perceived_colour_master_id":
		return i.PerceivedColourMasterID, true
	case "department_no":
		return i.DepartmentNo, true
	case "index_code":
		return i.IndexCode, true
	case "index_group_no":
		return i.IndexGroupNo, true
	case "section_no":
		return i.SectionNo, true
	case "garment_group_no":
		return i.GarmentGroupNo, true
	default:
		return "", false
	}
}

// Customer is a retail customer with demographic attributes.
type Customer struct {
	ID                   string
	ClubMemberStatus     string
	FashionNewsFrequency string
	Age                  string
	PostalCode           string
}

// Transaction is an append-only purchase fact.
type Transaction struct {
	Date       time.Time
	CustomerID string
	ItemID     string
	Price      float64
	Channel    int
}

// Dataset owns one items table, one customers table and one transactions
// table. After Prune every item and customer id referenced by a transaction
// appears in the respective table and nothing else does.
type Dataset struct {
	Items        []Item
	Customers    []Customer
	Transactions []Transaction
}

func NewDataset(items []Item, customers []Customer, transactions []Transaction) *Dataset {
	return &Dataset{
		Items:        items,
		Customers:    customers,
		Transactions: transactions,
	}
}

// Prune drops items and customers not referenced by any transaction.
// Pruning an already pruned dataset is a no-op.
func (d *Dataset) Prune() {
	d.Items = PruneItems(d.Items, d.Transactions)
	d.Customers = PruneCustomers(d.Customers, d.Transactions)
}

// PruneItems keeps the items referenced by transactions, in table order.
func PruneItems(items []Item, transactions []Transaction) []Item {
	referenced := ItemIDSet(transactions)
	return lo.Filter(items, func(item Item, _ int) bool {
		return referenced.Contains(item.ID)
	})
}

// PruneCustomers keeps the customers referenced by transactions, in table order.
func PruneCustomers(customers []Customer, transactions []Transaction) []Customer {
	referenced := CustomerIDSet(transactions)
	return lo.Filter(customers, func(customer Customer, _ int) bool {
		return referenced.Contains(customer.ID)
	})
}

// CustomerIDs returns unique customer ids in first-occurrence order.
func CustomerIDs(transactions []Transaction) []string {
	return lo.Uniq(lo.Map(transactions, func(t Transaction, _ int) string {
		return t.CustomerID
	}))
}

// ItemIDs returns unique item ids in first-occurrence order.
func ItemIDs(transactions []Transaction) []string {
	return lo.Uniq(lo.Map(transactions, func(t Transaction, _ int) string {
		return t.ItemID
	}))
}

// CustomerIDSet returns the set of customer ids referenced by transactions.
func CustomerIDSet(transactions []Transaction) mapset.Set[string] {
	ids := mapset.NewSet[string]()
	for _, t := range transactions {
		ids.Add(t.CustomerID)
	}
	return ids
}

// ItemIDSet returns the set of item ids referenced by transactions.
func ItemIDSet(transactions []Transaction) mapset.Set[string] {
	ids := mapset.NewSet[string]()
	for _, t := range transactions {
		ids.Add(t.ItemID)
	}
	return ids
}
