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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorKeepsOnlyTopK(t *testing.T) {
	c := newCollector(2)
	scores := []float64{0.1, 0.9, 0.5, 0.2}
	for _, s := range scores {
		c.offer(PathMatch{Score: s, Path: "x"})
	}
	require.Len(t, c.results, 2)
	var got []float64
	for _, r := range c.results {
		got = append(got, r.Score)
	}
	require.ElementsMatch(t, []float64{0.9, 0.5}, got)
}

func TestCollectorReportsMinScoreOnceFull(t *testing.T) {
	c := newCollector(2)
	_, full := c.offer(PathMatch{Score: 0.3})
	require.False(t, full)
	minScore, full := c.offer(PathMatch{Score: 0.7})
	require.True(t, full)
	require.Equal(t, 0.3, minScore)

	minScore, full = c.offer(PathMatch{Score: 0.5})
	require.True(t, full)
	require.Equal(t, 0.5, minScore)
}

func TestCollectorZeroCapacityNeverReportsFull(t *testing.T) {
	c := newCollector(0)
	_, full := c.offer(PathMatch{Score: 1})
	require.False(t, full)
	require.Empty(t, c.results)
}
