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

package feature

import (
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/dataset"
	"go.uber.org/zap"
)

// BasketItemIDs returns the item ids a customer purchased, in row order,
// repeats included.
func BasketItemIDs(transactions []dataset.Transaction, customerID string) []string {
	var ids []string
	for _, t := range transactions {
		if t.CustomerID == customerID {
			ids = append(ids, t.ItemID)
		}
	}
	return ids
}

// CustomerBasket resolves a customer's purchased items to their feature rows
// in purchase order. Items absent from the matrix are skipped: the basket
// joins against the catalog the matrix was built from, and a basket row
// without features cannot feed clustering.
func CustomerBasket(transactions []dataset.Transaction, customerID string, matrix *Matrix) [][]float32 {
	itemIDs := BasketItemIDs(transactions, customerID)
	rows := make([][]float32, 0, len(itemIDs))
	missing := 0
	for _, id := range itemIDs {
		if row, ok := matrix.Row(id); ok {
			rows = append(rows, row)
		} else {
			missing++
		}
	}
	if missing > 0 {
		log.Logger().Warn("basket items missing from feature matrix",
			zap.String("customer_id", customerID),
			zap.Int("missing", missing))
	}
	if len(rows) == 0 {
		log.Logger().Debug("empty basket", zap.String("customer_id", customerID))
	}
	return rows
}
