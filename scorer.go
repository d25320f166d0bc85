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

import "unicode"

const (
	baseDistancePenalty       = 0.6
	additionalDistancePenalty = 0.05
	minDistancePenalty        = 0.2
	caseMismatchPenalty       = 0.001
)

// scorer owns the scratch buffers a worker reuses across every candidate it
// scores for a single MatchPaths call: last-position limits, the memoized
// score/best-position matrices, and the reconstructed match positions.
// Buffers are cleared and resized per candidate, never reallocated unless
// the candidate's path needs more room than the buffer currently has, so
// scoring a segment does not pressure the allocator.
type scorer struct {
	lastPositions []int
	matchPositions []int

	scoreMatrix  []float64
	scoreSet     []bool
	bestPosition []int
}

func newScorer(queryLen int) *scorer {
	return &scorer{
		lastPositions:  make([]int, queryLen),
		matchPositions: make([]int, queryLen),
	}
}

// findLastPositions fills s.lastPositions for a query of length
// len(s.lastPositions) against the concatenated lowercase sequence
// lowerPrefix ‖ lowerPath, walking the query in reverse and consuming the
// sequence from the right. It returns false if any query character has no
// feasible position, in which case scoring this candidate would return 0
// and is skipped entirely (the C4 last-position prefilter).
func (s *scorer) findLastPositions(lowerPrefix, lowerPath []rune, lowerQuery []rune) bool {
	pathRemaining := len(lowerPath)
	prefixRemaining := len(lowerPrefix)

	for i := len(lowerQuery) - 1; i >= 0; i-- {
		c := lowerQuery[i]

		if j := rindex(lowerPath[:pathRemaining], c); j >= 0 {
			s.lastPositions[i] = len(lowerPrefix) + j
			pathRemaining = j
			continue
		}
		// A miss consumes the rest of the path: every earlier query
		// character must then be matched inside the prefix.
		pathRemaining = 0
		if j := rindex(lowerPrefix[:prefixRemaining], c); j >= 0 {
			s.lastPositions[i] = j
			prefixRemaining = j
			continue
		}
		return false
	}
	return true
}

// rindex returns the index of the last occurrence of c in s, or -1.
func rindex(s []rune, c rune) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// score runs the memoized recursive alignment of query against
// prefix‖path and, if it scores above zero, reconstructs matchPositions
// from the best-position matrix. minScore is the current collector floor
// (0 disables pruning). The score_matrix/best_position_matrix scratch is
// reset here, not reused from a previous candidate.
func (s *scorer) score(
	query, lowerQuery, path, lowerPath, prefix, lowerPrefix []rune,
	smartCase bool,
	minScore float64,
) float64 {
	pathLen := len(prefix) + len(path)
	matrixLen := len(query) * pathLen

	if cap(s.scoreMatrix) < matrixLen {
		s.scoreMatrix = make([]float64, matrixLen)
		s.scoreSet = make([]bool, matrixLen)
		s.bestPosition = make([]int, matrixLen)
	} else {
		s.scoreMatrix = s.scoreMatrix[:matrixLen]
		s.scoreSet = s.scoreSet[:matrixLen]
		s.bestPosition = s.bestPosition[:matrixLen]
		for i := range s.scoreSet {
			s.scoreSet[i] = false
			s.bestPosition[i] = 0
		}
	}

	c := &scoreContext{
		query:      query,
		lowerQuery: lowerQuery,
		path:       path,
		lowerPath:  lowerPath,
		prefix:     prefix,
		lowerPrefix: lowerPrefix,
		smartCase:  smartCase,
		pathLen:    pathLen,
		minScore:   minScore,
		lastPositions: s.lastPositions,
		scoreMatrix:   s.scoreMatrix,
		scoreSet:      s.scoreSet,
		bestPosition:  s.bestPosition,
	}

	score := c.recurse(0, 0, float64(len(query))) * float64(len(query))
	if score <= 0 {
		return 0
	}

	curStart := 0
	for i := range query {
		pos := s.bestPosition[i*pathLen+curStart]
		s.matchPositions[i] = pos
		curStart = pos + 1
	}
	return score
}

// scoreContext bundles the read-only inputs and scratch slices a single
// score() call's recursion needs, so recurse doesn't carry a dozen
// positional parameters.
type scoreContext struct {
	query, lowerQuery []rune
	path, lowerPath   []rune
	prefix, lowerPrefix []rune
	smartCase         bool
	pathLen           int
	minScore          float64

	lastPositions []int
	scoreMatrix   []float64
	scoreSet      []bool
	bestPosition  []int
}

// charAt returns the original-case and lowercase characters of the
// concatenated prefix‖path sequence at column j.
func (c *scoreContext) charAt(j int) (curr, lower rune) {
	if j < len(c.prefix) {
		return c.prefix[j], c.lowerPrefix[j]
	}
	k := j - len(c.prefix)
	return c.path[k], c.lowerPath[k]
}

// recurse returns a multiplier in (0, 1] for aligning query[queryIdx:]
// starting at path column pathIdx, given the cumulative score so far is
// curScore. It is memoized on (queryIdx, pathIdx) and prunes any column
// whose continuation cannot beat minScore.
func (c *scoreContext) recurse(queryIdx, pathIdx int, curScore float64) float64 {
	if queryIdx == len(c.query) {
		return 1
	}

	memoIdx := queryIdx*c.pathLen + pathIdx
	if c.scoreSet[memoIdx] {
		return c.scoreMatrix[memoIdx]
	}

	var best float64
	var bestPos int

	queryChar := c.lowerQuery[queryIdx]
	limit := c.lastPositions[queryIdx]

	lastSlash := 0
	for j := pathIdx; j <= limit; j++ {
		curr, pathChar := c.charAt(j)
		isPathSep := pathChar == '/' || pathChar == '\\'

		if queryIdx == 0 && isPathSep {
			lastSlash = j
		}

		if !(queryChar == pathChar || (isPathSep && queryChar == '_') || queryChar == '\\') {
			continue
		}

		charScore := 1.0
		if j > pathIdx {
			last, _ := c.charAt(j - 1)
			switch {
			case last == '/':
				charScore = 0.9
			case last == '-' || last == '_' || last == ' ' || unicode.IsDigit(last):
				charScore = 0.8
			case unicode.IsLower(last) && unicode.IsUpper(curr):
				charScore = 0.8
			case last == '.':
				charScore = 0.7
			case queryIdx == 0:
				charScore = baseDistancePenalty
			default:
				charScore = minDistancePenalty
				if v := baseDistancePenalty - float64(j-pathIdx-1)*additionalDistancePenalty; v > charScore {
					charScore = v
				}
			}
		}

		// Apply a severe penalty if the case doesn't match. This makes
		// exact-case matches outrank case-insensitive and separator
		// matches of otherwise equal shape.
		if (c.smartCase || curr == '/') && c.query[queryIdx] != curr {
			charScore *= caseMismatchPenalty
		}

		multiplier := charScore
		if queryIdx == 0 {
			multiplier /= float64(c.pathLen - lastSlash)
		}

		nextScore := 1.0
		if c.minScore > 0 {
			nextScore = curScore * multiplier
			if nextScore < c.minScore {
				if best == 0 {
					best = 1e-18
				}
				continue
			}
		}

		candidate := c.recurse(queryIdx+1, j+1, nextScore) * multiplier
		if candidate > best {
			best = candidate
			bestPos = j
			if candidate == 1 {
				break
			}
		}
	}

	if bestPos != 0 {
		c.bestPosition[memoIdx] = bestPos
	}
	c.scoreMatrix[memoIdx] = best
	c.scoreSet[memoIdx] = true
	return best
}
