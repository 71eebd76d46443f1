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

package heap

import (
	"sort"
	"testing"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestPriorityQueue(t *testing.T) {
	pq := NewPriorityQueue(false)
	elements := []int32{5, 3, 7, 8, 6, 2, 9}
	for _, e := range elements {
		pq.Push(e, float32(e))
	}
	assert.Equal(t, len(elements), pq.Len())
	assert.ElementsMatch(t, elements, pq.Values())

	// duplicate pushes are ignored
	pq.Push(5, 5)
	assert.Equal(t, len(elements), pq.Len())

	// test peek pop
	reversed := NewPriorityQueue(false)
	for _, e := range pq.Values() {
		reversed.Push(e, float32(e))
	}
	r := reversed.Reverse()
	sort.Slice(elements, func(i, j int) bool { return elements[i] < elements[j] })
	for _, e := range elements {
		value, weight := pq.Peek()
		assert.Equal(t, e, value)
		assert.Equal(t, e, int32(weight))
		value, weight = pq.Pop()
		assert.Equal(t, e, value)
		assert.Equal(t, e, int32(weight))
	}

	// test reverse
	lo.Reverse(elements)
	for _, e := range elements {
		value, weight := r.Pop()
		assert.Equal(t, e, value)
		assert.Equal(t, e, int32(weight))
	}
}

func TestPriorityQueue_NaN(t *testing.T) {
	pq := NewPriorityQueue(true)
	assert.Panics(t, func() {
		pq.Push(1, math32.NaN())
	})
}

func TestTopKFilter(t *testing.T) {
	a := NewTopKFilter[int32, float32](3)
	a.Push(10, 2)
	a.Push(20, 8)
	a.Push(30, 1)
	values, weights := a.PopAll()
	assert.Equal(t, []int32{20, 10, 30}, values)
	assert.Equal(t, []float32{8, 2, 1}, weights)

	a = NewTopKFilter[int32, float32](3)
	a.Push(10, 2)
	a.Push(20, 8)
	a.Push(30, 1)
	a.Push(40, 9)
	a.Push(50, 7)
	values, _ = a.PopAll()
	assert.Equal(t, []int32{40, 20, 50}, values)
}
