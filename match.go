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

// Package fuzzypath implements the fuzzy path-matching core of a
// workspace-wide file navigator: given a short query and a set of
// directory-tree snapshots, it returns the top-K file paths ranked by a
// score that rewards matches at word boundaries, path-segment starts, and
// case-preserving positions.
package fuzzypath

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/fuzzypath/internal/workerpool"
)

// MatchCandidate is a borrowed view of one file entry under consideration:
// its path and precomputed CharBag. Candidates are produced on the fly
// from a Snapshot's file iterators and never outlive a single MatchPaths
// call.
type MatchCandidate struct {
	Path    string
	CharBag CharBag
}

// PathMatch is one ranked result of a MatchPaths call.
type PathMatch struct {
	// Score is strictly positive and finite for every returned result.
	Score float64
	// Positions holds one index per query character, into the
	// concatenated prefix‖path sequence (prefix is the root name when
	// IncludeRootName is set, otherwise empty). Strictly increasing.
	Positions []int
	// TreeID is copied from the Snapshot the match came from.
	TreeID int
	Path   string
}

// MatchOptions configures a MatchPaths call.
type MatchOptions struct {
	// IncludeRootName matches each candidate as RootName()‖Path, with
	// RootName() supplying the prefix region scored separately from Path.
	IncludeRootName bool
	// IncludeIgnored selects between total and visible file traversal on
	// each snapshot.
	IncludeIgnored bool
	// SmartCase, when set, applies the case-mismatch penalty to any
	// query character whose original case differs from the matched path
	// character, not only at path separators.
	SmartCase bool
	// MaxResults is K. A MaxResults of 0 returns no results.
	MaxResults int
}

// MatchPaths ranks the files visible across snapshots against query and
// returns at most opts.MaxResults PathMatch values, sorted by score
// descending. Work is sharded across pool.Width() workers; cancelFlag, if
// non-nil, is polled between candidates and causes workers to return early
// with whatever partial results they have accumulated. An empty query
// always returns an empty, nil result without spinning up any worker.
func MatchPaths(snapshots []*Snapshot, query string, opts MatchOptions, cancelFlag *atomic.Bool, pool *workerpool.Pool) []PathMatch {
	if query == "" || opts.MaxResults == 0 {
		return nil
	}

	start := time.Now()
	metricMatchRunning.Inc()
	defer func() {
		metricMatchRunning.Dec()
		metricMatchDuration.Observe(time.Since(start).Seconds())
	}()

	lowerQuery := make([]rune, 0, len(query))
	cased := make([]rune, 0, len(query))
	for _, c := range query {
		cased = append(cased, c)
		lowerQuery = append(lowerQuery, asciiLower(c))
	}
	queryBag := NewCharBag(string(lowerQuery))

	total := 0
	for _, s := range snapshots {
		if opts.IncludeIgnored {
			total += s.FileCount()
		} else {
			total += s.VisibleFileCount()
		}
	}
	if total == 0 {
		return nil
	}

	workers := pool.Width()
	segSize := segmentSize(total, workers)

	segmentResults := make([][]PathMatch, workers)

	pool.Scoped(workers, func(w int) {
		segStart := w * segSize
		segEnd := segStart + segSize

		sc := newScorer(len(cased))
		coll := newCollector(opts.MaxResults)
		minScore := 0.0

		for _, ov := range overlaps(snapshots, opts.IncludeIgnored, segStart, segEnd) {
			if cancelled(cancelFlag) {
				metricSegmentsCancelled.Inc()
				break
			}
			minScore = scanSnapshot(ov, cased, lowerQuery, queryBag, opts, cancelFlag, sc, coll, minScore)
		}

		segmentResults[w] = coll.results
	})

	var results []PathMatch
	for _, r := range segmentResults {
		results = append(results, r...)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// scanSnapshot scores every file entry in the [ov.start, ov.end) window of
// one snapshot, pushing qualifying matches into coll, and returns the
// collector's (possibly unchanged) pruning floor.
func scanSnapshot(
	ov treeOverlap,
	query, lowerQuery []rune,
	queryBag CharBag,
	opts MatchOptions,
	cancelFlag *atomic.Bool,
	sc *scorer,
	coll *collector,
	minScore float64,
) float64 {
	snap := ov.snapshot

	var prefix, lowerPrefix []rune
	if opts.IncludeRootName {
		for _, c := range snap.RootName() {
			prefix = append(prefix, c)
			lowerPrefix = append(lowerPrefix, asciiLower(c))
		}
	}

	var entries []FileEntry
	if opts.IncludeIgnored {
		entries = snap.Files(ov.start)
	} else {
		entries = snap.VisibleFiles(ov.start)
	}
	n := ov.end - ov.start
	if n < len(entries) {
		entries = entries[:n]
	}

	var path, lowerPath []rune
	for _, entry := range entries {
		metricCandidatesScanned.Inc()

		if !entry.CharBag.ContainsAll(queryBag) {
			metricCandidatesCharBagRejected.Inc()
			continue
		}
		if cancelled(cancelFlag) {
			metricSegmentsCancelled.Inc()
			break
		}

		path = path[:0]
		lowerPath = lowerPath[:0]
		for _, c := range entry.Path {
			path = append(path, c)
			lowerPath = append(lowerPath, asciiLower(c))
		}

		if !sc.findLastPositions(lowerPrefix, lowerPath, lowerQuery) {
			metricCandidatesPositionRejected.Inc()
			continue
		}

		score := sc.score(query, lowerQuery, path, lowerPath, prefix, lowerPrefix, opts.SmartCase, minScore)
		if score <= 0 {
			continue
		}

		metricMatchesFound.Inc()
		positions := make([]int, len(query))
		copy(positions, sc.matchPositions)

		wasFull := coll.Len() == coll.maxResults
		ms, full := coll.offer(PathMatch{
			Score:     score,
			Positions: positions,
			TreeID:    snap.ID(),
			Path:      entry.Path,
		})
		if wasFull {
			metricCollectorEvictions.Inc()
		}
		if full {
			minScore = ms
		}
	}
	return minScore
}
