// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "state",
			Help:      "The current session lifecycle state (0: logged out, 1: connecting, 2: roster loading, 3: ready).",
		},
	)
	sessionRosterFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "roster_fetches_total",
			Help:      "The total number of roster bulk fetches.",
		},
		[]string{"result"},
	)
	sessionRosterFetchDurationBucket = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "roster_fetch_duration_bucket",
			Help:      "Bucketed histogram of roster bulk fetch duration.",
			Buckets:   prometheus.ExponentialBuckets(.01, 2, 12),
		},
	)
	sessionInsertedEntries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "inserted_entries_total",
			Help:      "The total number of roster entries inserted by bulk loads.",
		},
	)
	sessionInsertChunks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "insert_chunks_total",
			Help:      "The total number of bulk insertion chunks.",
		},
	)
	sessionCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "session",
			Name:      "commands_total",
			Help:      "The total number of issued friendship commands.",
		},
		[]string{"command", "result"},
	)
)

func init() {
	prometheus.MustRegister(sessionState)
	prometheus.MustRegister(sessionRosterFetches)
	prometheus.MustRegister(sessionRosterFetchDurationBucket)
	prometheus.MustRegister(sessionInsertedEntries)
	prometheus.MustRegister(sessionInsertChunks)
	prometheus.MustRegister(sessionCommands)
}

func reportState(st State) {
	sessionState.Set(float64(st))
}

func reportRosterFetch(success bool, d time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	sessionRosterFetches.WithLabelValues(result).Inc()
	sessionRosterFetchDurationBucket.Observe(d.Seconds())
}

func reportInsertChunk(inserted int) {
	sessionInsertChunks.Inc()
	sessionInsertedEntries.Add(float64(inserted))
}

func reportCommand(cmd string, result string) {
	sessionCommands.WithLabelValues(cmd, result).Inc()
}
