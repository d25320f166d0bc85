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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricMatchRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fuzzypath_match_running",
		Help: "The number of concurrent MatchPaths calls running.",
	})
	metricMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fuzzypath_match_duration_seconds",
		Help:    "The duration a MatchPaths call took in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	metricCandidatesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_candidates_scanned_total",
		Help: "The total number of candidates considered across all workers.",
	})
	metricCandidatesCharBagRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_candidates_charbag_rejected_total",
		Help: "The total number of candidates rejected by the CharBag superset prefilter.",
	})
	metricCandidatesPositionRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_candidates_position_rejected_total",
		Help: "The total number of candidates rejected by the last-position prefilter.",
	})
	metricMatchesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_matches_found_total",
		Help: "The total number of candidates that scored above zero.",
	})
	metricCollectorEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_collector_evictions_total",
		Help: "The total number of results evicted from a full top-K collector.",
	})
	metricSegmentsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fuzzypath_segments_cancelled_total",
		Help: "The total number of times a worker stopped scanning early because it observed cancellation.",
	})
)
