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

func runes(s string) []rune { return []rune(s) }

func TestFindLastPositionsRejectsInfeasibleQuery(t *testing.T) {
	sc := newScorer(2)
	ok := sc.findLastPositions(runes("abc"), runes("bdef"), runes("dc"))
	require.False(t, ok)
}

func TestFindLastPositionsAcceptsFeasibleQuery(t *testing.T) {
	sc := newScorer(2)
	ok := sc.findLastPositions(runes("abc"), runes("bdef"), runes("cd"))
	require.True(t, ok)
	require.Equal(t, []int{2, 4}, sc.lastPositions)
}

func TestFindLastPositionsSpanningPrefixAndPath(t *testing.T) {
	sc := newScorer(4)
	ok := sc.findLastPositions(runes("zed/"), runes("zed/f"), runes("z/zf"))
	require.True(t, ok)
	require.Equal(t, []int{0, 3, 4, 8}, sc.lastPositions)
}

// TestRecurseMatchConditionPrecedence pins the literal, as-written
// precedence of the scorer's acceptance predicate: a separator position
// matches a query char of '_', and a query char of '\\' matches any
// position, independent of the separator check. This is the behavior
// called out as an open question: replicate it literally rather than
// the arguably "intended" fully-parenthesized reading.
func TestRecurseMatchConditionPrecedence(t *testing.T) {
	// "_" in the query should align with a path separator even though the
	// literal character classes differ.
	sc := newScorer(1)
	query := runes("_")
	lowerQuery := runes("_")
	path := runes("/")
	lowerPath := runes("/")
	require.True(t, sc.findLastPositions(nil, lowerPath, lowerQuery))
	score := sc.score(query, lowerQuery, path, lowerPath, nil, nil, false, 0)
	require.Greater(t, score, 0.0)
	require.Equal(t, []int{0}, sc.matchPositions)

	// "\\" in the query matches any single position, per the unconditional
	// `queryChar == '\\'` disjunct.
	sc2 := newScorer(1)
	query2 := runes("\\")
	lowerQuery2 := runes("\\")
	path2 := runes("x")
	lowerPath2 := runes("x")
	require.True(t, sc2.findLastPositions(nil, lowerPath2, lowerQuery2))
	score2 := sc2.score(query2, lowerQuery2, path2, lowerPath2, nil, nil, false, 0)
	require.Greater(t, score2, 0.0)
}

func TestFindLastPositionsRejectsMissingChar(t *testing.T) {
	sc := newScorer(1)
	ok := sc.findLastPositions(nil, runes("abc"), runes("z"))
	require.False(t, ok)
}

func TestScorePrefersExactCaseUnderSmartCase(t *testing.T) {
	sc := newScorer(1)
	query := runes("A")
	lowerQuery := runes("a")
	pathExact := runes("A")
	pathMismatch := runes("a")
	lowerPath := runes("a")

	require.True(t, sc.findLastPositions(nil, lowerPath, lowerQuery))
	exactScore := sc.score(query, lowerQuery, pathExact, lowerPath, nil, nil, true, 0)

	sc2 := newScorer(1)
	require.True(t, sc2.findLastPositions(nil, lowerPath, lowerQuery))
	mismatchScore := sc2.score(query, lowerQuery, pathMismatch, lowerPath, nil, nil, true, 0)

	require.Greater(t, exactScore, mismatchScore)
}
