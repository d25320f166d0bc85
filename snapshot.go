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
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"

	"github.com/sourcegraph/fuzzypath/ignore"
)

// FileEntry is one file within a Snapshot: its path relative to the tree
// root, and a CharBag precomputed over its lowercased path so the matcher
// never has to rebuild it per query.
type FileEntry struct {
	Path    string
	CharBag CharBag
}

// Snapshot is an immutable view of one directory tree's file list at a
// point in time. MatchPaths never mutates a Snapshot; it is safe to share
// a Snapshot across concurrent calls.
type Snapshot struct {
	id       int
	rootName string
	files    []FileEntry // all files, in a stable order
	visible  []FileEntry // subsequence of files not classified as ignored
	ignored  *roaring.Bitmap
}

// NewSnapshot builds a Snapshot from a fixed, already-ordered list of file
// entries and the set of indices (into entries) that an ignore.Matcher
// classified as ignored. Non-file entries must never appear in entries;
// callers are responsible for that invariant, the same way the candidate
// iterators upstream of a real filesystem walk are (see BuildSnapshot).
func NewSnapshot(id int, rootName string, entries []FileEntry, ignored *roaring.Bitmap) *Snapshot {
	if ignored == nil {
		ignored = roaring.New()
	}
	visible := make([]FileEntry, 0, len(entries))
	for i, e := range entries {
		if !ignored.Contains(uint32(i)) {
			visible = append(visible, e)
		}
	}
	return &Snapshot{
		id:       id,
		rootName: rootName,
		files:    entries,
		visible:  visible,
		ignored:  ignored,
	}
}

// ID returns the snapshot's stable identifier, copied into every PathMatch
// produced from this tree.
func (s *Snapshot) ID() int { return s.id }

// RootName returns the display name optionally prepended to each path when
// IncludeRootName is set.
func (s *Snapshot) RootName() string { return s.rootName }

// FileCount returns the total number of files in the tree, ignored or not.
func (s *Snapshot) FileCount() int { return len(s.files) }

// VisibleFileCount returns the number of non-ignored files in the tree.
func (s *Snapshot) VisibleFileCount() int { return len(s.visible) }

// Files returns the total file entries starting at start, in the same
// order used to compute FileCount-based segment boundaries.
func (s *Snapshot) Files(start int) []FileEntry {
	if start >= len(s.files) {
		return nil
	}
	return s.files[start:]
}

// VisibleFiles returns the non-ignored file entries starting at the
// start-th visible entry.
func (s *Snapshot) VisibleFiles(start int) []FileEntry {
	if start >= len(s.visible) {
		return nil
	}
	return s.visible[start:]
}

// IsIgnored reports whether the file at index i (into Files(0)) was
// classified as ignored when the Snapshot was built.
func (s *Snapshot) IsIgnored(i int) bool {
	return s.ignored.Contains(uint32(i))
}

// BuildSnapshot walks root on disk and produces a Snapshot of its files,
// classifying each one against matcher (which may be nil, matching
// nothing). Paths are recorded relative to root using '/' separators
// regardless of OS. BuildSnapshot and StatRoot are the only places in the
// package that perform I/O and can fail.
func BuildSnapshot(id int, root, rootName string, matcher *ignore.Matcher) (*Snapshot, error) {
	type walked struct {
		entry   FileEntry
		ignored bool
	}
	var found []walked

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, "computing relative path for %s", path)
		}
		rel = filepath.ToSlash(rel)

		found = append(found, walked{
			entry:   FileEntry{Path: rel, CharBag: NewCharBag(rel)},
			ignored: matcher.Match(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].entry.Path < found[j].entry.Path })

	entries := make([]FileEntry, len(found))
	ignored := roaring.New()
	for i, w := range found {
		entries[i] = w.entry
		if w.ignored {
			ignored.Add(uint32(i))
		}
	}
	return NewSnapshot(id, rootName, entries, ignored), nil
}

// StatRoot validates that root exists and is a directory, so a caller can
// fail fast with a clear error before walking a potentially large tree
// rather than discovering the mistake partway through BuildSnapshot.
func StatRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "stat %s", root)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", root)
	}
	return nil
}
