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
	"strings"

	"github.com/juju/errors"
)

// RelevantSet is the per-customer ground truth: a space-joined ordered list
// of item ids purchased inside the target window. One row per customer with
// at least one transaction in the window.
type RelevantSet struct {
	customerIDs []string
	targets     map[string]string
}

// TargetToRelevant groups a target transaction window by customer id,
// preserving per-customer row order, and joins the item ids of each group
// with single spaces.
func TargetToRelevant(transactions []Transaction) *RelevantSet {
	r := &RelevantSet{targets: make(map[string]string)}
	grouped := make(map[string][]string)
	for _, t := range transactions {
		if _, seen := grouped[t.CustomerID]; !seen {
			r.customerIDs = append(r.customerIDs, t.CustomerID)
		}
		grouped[t.CustomerID] = append(grouped[t.CustomerID], t.ItemID)
	}
	for _, customerID := range r.customerIDs {
		r.targets[customerID] = strings.Join(grouped[customerID], " ")
	}
	return r
}

// NewRelevantSet rebuilds a relevant set from persisted rows.
func NewRelevantSet(customerIDs, targets []string) (*RelevantSet, error) {
	if len(customerIDs) != len(targets) {
		return nil, errors.Errorf("row count mismatch: %d customer ids, %d targets",
			len(customerIDs), len(targets))
	}
	r := &RelevantSet{
		customerIDs: customerIDs,
		targets:     make(map[string]string, len(customerIDs)),
	}
	for i, customerID := range customerIDs {
		r.targets[customerID] = targets[i]
	}
	return r, nil
}

// CustomerIDs returns the customers of the relevant set in insertion order.
func (r *RelevantSet) CustomerIDs() []string {
	return r.customerIDs
}

// Target returns the space-joined target string of a customer.
func (r *RelevantSet) Target(customerID string) (string, bool) {
	target, ok := r.targets[customerID]
	return target, ok
}

// TargetItems returns the target item ids of a customer in purchase order.
func (r *RelevantSet) TargetItems(customerID string) []string {
	target, ok := r.targets[customerID]
	if !ok {
		return nil
	}
	return strings.Split(target, " ")
}

// Len returns the number of customers in the relevant set.
func (r *RelevantSet) Len() int {
	return len(r.customerIDs)
}

// Target couples a transaction log with its held-out window: the log is split
// by time and the newer side becomes the relevant set.
type Target struct {
	TransactionsX []Transaction
	TransactionsY []Transaction
	Relevant      *RelevantSet
}

func NewTarget(transactions []Transaction, days int) (*Target, error) {
	x, y, err := SplitByTime(transactions, days)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Target{
		TransactionsX: x,
		TransactionsY: y,
		Relevant:      TargetToRelevant(y),
	}, nil
}
