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

	"github.com/stretchr/testify/assert"
)

func TestTargetToRelevant(t *testing.T) {
	transactions := []Transaction{
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "01"},
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "02"},
		{Date: date("2023-09-09"), CustomerID: "02", ItemID: "03"},
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "04"},
	}
	relevant := TargetToRelevant(transactions)
	assert.Equal(t, 2, relevant.Len())
	assert.Equal(t, []string{"1a", "02"}, relevant.CustomerIDs())
	target, ok := relevant.Target("1a")
	assert.True(t, ok)
	assert.Equal(t, "01 02 04", target)
	target, ok = relevant.Target("02")
	assert.True(t, ok)
	assert.Equal(t, "03", target)
	// customers absent from the window are absent from the output
	_, ok = relevant.Target("zz")
	assert.False(t, ok)
	assert.Nil(t, relevant.TargetItems("zz"))
}

func TestNewTarget(t *testing.T) {
	transactions := []Transaction{
		{Date: date("2023-09-09"), CustomerID: "1a", ItemID: "01"},
		{Date: date("2023-08-10"), CustomerID: "1a", ItemID: "02"},
		{Date: date("2023-08-15"), CustomerID: "02", ItemID: "03"},
		{Date: date("2023-09-08"), CustomerID: "1a", ItemID: "04"},
		{Date: date("2023-09-01"), CustomerID: "02", ItemID: "05"},
	}
	target, err := NewTarget(transactions, 7)
	assert.NoError(t, err)
	// cutoff is 2023-09-02: rows at 09-08 and 09-09 form the target window
	assert.Equal(t, 1, target.Relevant.Len())
	actual, ok := target.Relevant.Target("1a")
	assert.True(t, ok)
	assert.Equal(t, "01 04", actual)
	assert.Len(t, target.TransactionsX, 3)
	assert.Len(t, target.TransactionsY, 2)
}

func TestNewTargetEmpty(t *testing.T) {
	_, err := NewTarget(nil, 7)
	assert.Error(t, err)
}

func TestNewRelevantSet(t *testing.T) {
	relevant, err := NewRelevantSet([]string{"a", "b"}, []string{"01 02", "03"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"01", "02"}, relevant.TargetItems("a"))
	_, err = NewRelevantSet([]string{"a"}, []string{"01", "02"})
	assert.Error(t, err)
}
