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

// Command fuzzypath fuzzy-matches a query against the files under one or
// more directory trees and prints the ranked results, the way an editor's
// file navigator would drive the matching core interactively.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/felixge/fgprof"
	"github.com/rs/xid"
	sglog "github.com/sourcegraph/log"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/sourcegraph/fuzzypath"
	"github.com/sourcegraph/fuzzypath/ignore"
	"github.com/sourcegraph/fuzzypath/internal/workerpool"
)

func profile(path string, duration time.Duration, start func(io.Writer) (stop func())) func() bool {
	if path == "" {
		return func() bool { return false }
	}

	f, err := os.Create(path)
	if err != nil {
		sglog.Scoped("fuzzypath", "fuzzy path matcher CLI").Fatal("creating profile output", sglog.Error(err))
	}

	t := time.Now()
	stop := start(f)

	return func() bool {
		if time.Since(t) < duration {
			return true
		}
		stop()
		f.Close()
		return false
	}
}

func startFullProfile(path string, duration time.Duration) func() bool {
	return profile(path, duration, func(w io.Writer) func() {
		stop := fgprof.Start(w, fgprof.FormatPprof)
		return func() {
			if err := stop(); err != nil {
				sglog.Scoped("fuzzypath", "fuzzy path matcher CLI").Fatal("stopping full profile", sglog.Error(err))
			}
		}
	})
}

func startCPUProfile(path string, duration time.Duration) func() bool {
	return profile(path, duration, func(w io.Writer) func() {
		if err := pprof.StartCPUProfile(w); err != nil {
			sglog.Scoped("fuzzypath", "fuzzy path matcher CLI").Fatal("starting cpu profile", sglog.Error(err))
		}
		return pprof.StopCPUProfile
	})
}

func main() {
	root := flag.String("root", ".", "directory tree to index and search")
	rootName := flag.String("root_name", "", "display name prepended to matched paths when -include_root_name is set")
	includeRootName := flag.Bool("include_root_name", false, "match root_name‖path instead of path alone")
	includeIgnored := flag.Bool("include_ignored", false, "also match files excluded by .fuzzypathignore")
	smartCase := flag.Bool("smart_case", false, "penalize query characters whose case doesn't match the candidate")
	maxResults := flag.Int("n", 10, "maximum number of results to print")
	workers := flag.Int("workers", 0, "worker pool width; 0 uses GOMAXPROCS")
	cpuProfile := flag.String("cpu_profile", "", "write cpu profile to `file`")
	fullProfile := flag.String("full_profile", "", "write full profile to `file`")
	profileTime := flag.Duration("profile_time", time.Second, "run this long to gather profiling stats")

	flag.Usage = func() {
		name := os.Args[0]
		fmt.Fprintf(os.Stderr, "Usage:\n\n  %s [option] QUERY\n"+
			"for example\n\n  %s -root ~/src/project main.go\n\n", name, name)
		flag.PrintDefaults()
	}
	flag.Parse()

	liblog := sglog.Init(sglog.Resource{Name: "fuzzypath"})
	defer liblog.Sync()
	logger := sglog.Scoped("fuzzypath", "fuzzy path matcher CLI")

	if len(flag.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "query is missing")
		flag.Usage()
		os.Exit(2)
	}
	query := strings.Join(flag.Args(), " ")
	runID := xid.New()

	undo, err := maxprocs.Set()
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS from cgroup quota", sglog.Error(err))
	}
	defer undo()

	if err := fuzzypath.StatRoot(*root); err != nil {
		logger.Fatal("invalid root", sglog.String("root", *root), sglog.Error(err))
	}

	matcher, err := ignore.ParseFile(strings.NewReader(""))
	if err != nil {
		logger.Fatal("building default ignore matcher", sglog.Error(err))
	}
	if f, err := os.Open(*root + "/" + ignore.FileName); err == nil {
		matcher, err = ignore.ParseFile(f)
		f.Close()
		if err != nil {
			logger.Fatal("parsing ignore file", sglog.Error(err))
		}
	}

	snap, err := fuzzypath.BuildSnapshot(0, *root, *rootName, matcher)
	if err != nil {
		logger.Fatal("building snapshot", sglog.String("root", *root), sglog.Error(err))
	}
	logger.Info("indexed tree",
		sglog.String("run_id", runID.String()),
		sglog.String("root", *root),
		sglog.Int("file_count", snap.FileCount()),
		sglog.Int("visible_file_count", snap.VisibleFileCount()),
	)

	poolWidth := *workers
	if poolWidth <= 0 {
		poolWidth = runtime.GOMAXPROCS(0)
	}
	pool := workerpool.New(poolWidth)
	opts := fuzzypath.MatchOptions{
		IncludeRootName: *includeRootName,
		IncludeIgnored:  *includeIgnored,
		SmartCase:       *smartCase,
		MaxResults:      *maxResults,
	}

	runMatch := func() []fuzzypath.PathMatch {
		return fuzzypath.MatchPaths([]*fuzzypath.Snapshot{snap}, query, opts, nil, pool)
	}

	results := runMatch()

	for run := startCPUProfile(*cpuProfile, *profileTime); run(); {
		results = runMatch()
	}
	for run := startFullProfile(*fullProfile, *profileTime); run(); {
		results = runMatch()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, m := range results {
		fmt.Fprintf(tw, "%.4f\t%s\t%d\n", m.Score, m.Path, m.TreeID)
	}
	tw.Flush()
}
