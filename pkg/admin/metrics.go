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

package admin

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	adminRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "admin",
			Name:      "requests_total",
			Help:      "The total number of served admin HTTP requests.",
		},
		[]string{"route", "code"},
	)
	adminRequestDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rostersync",
			Subsystem: "admin",
			Name:      "request_duration_bucket",
			Help:      "Bucketed histogram of admin HTTP request duration.",
			Buckets:   prometheus.ExponentialBuckets(.0005, 2, 14),
		},
		[]string{"route"},
	)
	adminEventClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rostersync",
			Subsystem: "admin",
			Name:      "event_clients",
			Help:      "The number of connected event feed clients.",
		},
	)
	adminDroppedEventClients = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "admin",
			Name:      "dropped_event_clients_total",
			Help:      "The total number of event feed clients dropped for falling behind.",
		},
	)
)

func init() {
	prometheus.MustRegister(adminRequests)
	prometheus.MustRegister(adminRequestDurationBucket)
	prometheus.MustRegister(adminEventClients)
	prometheus.MustRegister(adminDroppedEventClients)
}

func reportRequest(route string, status int, durationInSecs float64) {
	adminRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	adminRequestDurationBucket.WithLabelValues(route).Observe(durationInSecs)
}

func reportEventClients(delta float64) {
	adminEventClients.Add(delta)
}

func reportDroppedEventClient() {
	adminDroppedEventClients.Inc()
}
