// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fuzzypath

import "container/heap"

// collector is a bounded min-heap of the best maxResults PathMatch values
// seen by one worker segment. Once full, minScore is the pruning floor fed
// back into the scorer: any candidate that cannot beat it is worthless.
//
// collector implements heap.Interface directly (ordered ascending by
// score) rather than wrapping container/heap behind a Reverse adapter, so
// the minimum — the next candidate to evict — always sits at index 0.
type collector struct {
	results    []PathMatch
	maxResults int
}

func newCollector(maxResults int) *collector {
	return &collector{maxResults: maxResults}
}

func (c *collector) Len() int            { return len(c.results) }
func (c *collector) Less(i, j int) bool  { return c.results[i].Score < c.results[j].Score }
func (c *collector) Swap(i, j int)       { c.results[i], c.results[j] = c.results[j], c.results[i] }
func (c *collector) Push(x interface{})  { c.results = append(c.results, x.(PathMatch)) }
func (c *collector) Pop() interface{} {
	old := c.results
	n := len(old)
	item := old[n-1]
	c.results = old[:n-1]
	return item
}

// offer inserts m, evicting the current minimum if the heap now exceeds
// maxResults. It returns the heap's minimum score and whether the heap is
// at capacity; the caller uses that to update the scorer's pruning floor.
func (c *collector) offer(m PathMatch) (minScore float64, full bool) {
	heap.Push(c, m)
	if c.Len() > c.maxResults {
		heap.Pop(c)
	}
	if c.Len() == c.maxResults && c.maxResults > 0 {
		return c.results[0].Score, true
	}
	return 0, false
}
