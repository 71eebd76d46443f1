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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadDataset(t *testing.T) {
	dir := t.TempDir()
	d := newTestDataset()
	require.NoError(t, SaveDataset(dir, d))
	loaded, err := LoadDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, d.Items, loaded.Items)
	assert.Equal(t, d.Customers, loaded.Customers)
	assert.Equal(t, len(d.Transactions), len(loaded.Transactions))
	for i, tr := range loaded.Transactions {
		assert.Equal(t, d.Transactions[i].CustomerID, tr.CustomerID)
		assert.Equal(t, d.Transactions[i].ItemID, tr.ItemID)
		assert.True(t, d.Transactions[i].Date.Equal(tr.Date))
		assert.Equal(t, d.Transactions[i].Price, tr.Price)
		assert.Equal(t, d.Transactions[i].Channel, tr.Channel)
	}
}

func TestSaveLoadRelevant(t *testing.T) {
	path := filepath.Join(t.TempDir(), RelevantFile)
	relevant := TargetToRelevant([]Transaction{
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "01"},
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "04"},
		{Date: date("2023-09-09"), CustomerID: "02", ItemID: "05"},
	})
	require.NoError(t, SaveRelevant(path, relevant))
	loaded, err := LoadRelevant(path)
	require.NoError(t, err)
	assert.Equal(t, relevant.CustomerIDs(), loaded.CustomerIDs())
	target, ok := loaded.Target("1a")
	assert.True(t, ok)
	assert.Equal(t, "01 04", target)
}

func TestLoadTransactionsBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), TransactionsFile)
	require.NoError(t, os.WriteFile(path, []byte(
		"t_dat,customer_id,article_id,price,sales_channel_id\nnot a date,c1,01,0.1,1\n"), 0644))
	_, err := LoadTransactions(path)
	assert.Error(t, err)
}

func TestLoadItemsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), ItemsFile)
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,one\n"), 0644))
	_, err := LoadItems(path)
	assert.Error(t, err)
}

// Ids keep their leading zeros through a save and load cycle.
func TestStringTypedIDs(t *testing.T) {
	dir := t.TempDir()
	d := NewDataset(
		[]Item{{ID: "0108775015"}},
		[]Customer{{ID: "00007d2de826758b65a93dd24ce629ed66842531df6699338c5570910a014cc2"}},
		[]Transaction{{Date: date("2023-09-09"), CustomerID: "00007d2de826758b65a93dd24ce629ed66842531df6699338c5570910a014cc2", ItemID: "0108775015"}},
	)
	require.NoError(t, SaveDataset(dir, d))
	loaded, err := LoadDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, "0108775015", loaded.Items[0].ID)
	assert.Equal(t, "0108775015", loaded.Transactions[0].ItemID)
}
