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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"

	"github.com/sourcegraph/fuzzypath/ignore"
)

func TestNewSnapshotSplitsVisibleFromIgnored(t *testing.T) {
	entries := []FileEntry{
		{Path: "a.go", CharBag: NewCharBag("a.go")},
		{Path: "b.go", CharBag: NewCharBag("b.go")},
		{Path: "vendor/c.go", CharBag: NewCharBag("vendor/c.go")},
	}
	ignored := roaring.New()
	ignored.Add(2)

	snap := NewSnapshot(7, "proj", entries, ignored)

	require.Equal(t, 7, snap.ID())
	require.Equal(t, "proj", snap.RootName())
	require.Equal(t, 3, snap.FileCount())
	require.Equal(t, 2, snap.VisibleFileCount())
	require.True(t, snap.IsIgnored(2))
	require.False(t, snap.IsIgnored(0))
	require.Equal(t, []FileEntry{entries[0], entries[1]}, snap.VisibleFiles(0))
}

func TestNewSnapshotNilIgnoredMeansNothingIgnored(t *testing.T) {
	entries := []FileEntry{{Path: "a"}, {Path: "b"}}
	snap := NewSnapshot(1, "r", entries, nil)
	require.Equal(t, 2, snap.VisibleFileCount())
}

func TestBuildSnapshotWalksAndSortsAndIgnores(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "c.go"), []byte("c"), 0o644))

	matcher, err := ignore.ParseFile(strings.NewReader("vendor/**\n"))
	require.NoError(t, err)

	snap, err := BuildSnapshot(1, dir, "proj", matcher)
	require.NoError(t, err)

	require.Equal(t, 3, snap.FileCount())
	require.Equal(t, 2, snap.VisibleFileCount())

	all := snap.Files(0)
	require.Equal(t, []string{"a.go", "b.go", "vendor/c.go"}, []string{all[0].Path, all[1].Path, all[2].Path})
	require.True(t, snap.IsIgnored(2))
	require.False(t, snap.IsIgnored(0))
	require.False(t, snap.IsIgnored(1))
}

func TestStatRootRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.Error(t, StatRoot(file))
	require.NoError(t, StatRoot(dir))
}
