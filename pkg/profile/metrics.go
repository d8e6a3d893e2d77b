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

package profile

import "github.com/prometheus/client_golang/prometheus"

var (
	profileCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "profile",
			Name:      "cache_hits_total",
			Help:      "The total number of profile cache hits.",
		},
	)
	profileCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "profile",
			Name:      "cache_misses_total",
			Help:      "The total number of profile cache misses.",
		},
	)
)

func init() {
	prometheus.MustRegister(profileCacheHits)
	prometheus.MustRegister(profileCacheMisses)
}

func reportCacheHit() {
	profileCacheHits.Inc()
}

func reportCacheMiss() {
	profileCacheMisses.Inc()
}
