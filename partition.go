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

// segmentSize returns the number of global file indices assigned to each
// of workers worker segments, covering total indices with ceiling division.
func segmentSize(total, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	return (total + workers - 1) / workers
}

// treeOverlap describes the slice of one Snapshot's files (via Files or
// VisibleFiles, selected by the caller) a worker segment should scan.
type treeOverlap struct {
	snapshot   *Snapshot
	start, end int // indices into Files(0)/VisibleFiles(0), not global indices
}

// overlaps walks snapshots in order, assigning each snapshot a global index
// range [treeStart, treeEnd) determined by includeIgnored, and returns the
// portion of each snapshot that intersects [segStart, segEnd). It stops as
// soon as a snapshot's range reaches segEnd, since later snapshots are
// entirely outside this segment (spec 4.5: "If tree_end >= seg_end, the
// worker stops scanning further snapshots").
func overlaps(snapshots []*Snapshot, includeIgnored bool, segStart, segEnd int) []treeOverlap {
	var out []treeOverlap
	treeStart := 0
	for _, snap := range snapshots {
		count := snap.VisibleFileCount()
		if includeIgnored {
			count = snap.FileCount()
		}
		treeEnd := treeStart + count

		if treeStart < segEnd && segStart < treeEnd {
			start := max(treeStart, segStart) - treeStart
			end := min(treeEnd, segEnd) - treeStart
			out = append(out, treeOverlap{snapshot: snap, start: start, end: end})
		}
		if treeEnd >= segEnd {
			break
		}
		treeStart = treeEnd
	}
	return out
}
