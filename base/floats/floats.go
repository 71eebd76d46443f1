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

package floats

import "github.com/chewxy/math32"

// Sum returns the sum of a vector.
func Sum(a []float32) float32 {
	var sum float32
	for _, v := range a {
		sum += v
	}
	return sum
}

// Mean returns the mean of a vector. Panic if the vector is empty.
func Mean(a []float32) float32 {
	return Sum(a) / float32(len(a))
}

// Dot returns the dot product of two vectors. Panic if the lengths mismatch.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("floats: slice lengths do not match")
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Euclidean returns the Euclidean distance between two vectors.
// Panic if the lengths mismatch.
func Euclidean(a, b []float32) float32 {
	return math32.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean returns the squared Euclidean distance between two vectors.
// Panic if the lengths mismatch.
func SquaredEuclidean(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("floats: slice lengths do not match")
	}
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// MulConst multiplies a vector with a const in place.
func MulConst(a []float32, c float32) {
	for i := range a {
		a[i] *= c
	}
}

// AddTo adds b to a element-wise and stores the result in dst.
func AddTo(dst, a []float32) {
	if len(dst) != len(a) {
		panic("floats: slice lengths do not match")
	}
	for i := range dst {
		dst[i] += a[i]
	}
}
