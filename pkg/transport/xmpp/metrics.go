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

package xmpp

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

var (
	iqRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "xmpp",
			Name:      "iq_requests_total",
			Help:      "The total number of IQ requests sent.",
		},
		[]string{"name", "result"},
	)
	iqRequestDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rostersync",
			Subsystem: "xmpp",
			Name:      "iq_request_duration_seconds",
			Help:      "IQ round trip duration in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"name"},
	)
	incomingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "xmpp",
			Name:      "incoming_stanzas_total",
			Help:      "The total number of incoming stanzas.",
		},
		[]string{"name", "type"},
	)
	outgoingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "xmpp",
			Name:      "outgoing_stanzas_total",
			Help:      "The total number of outgoing stanzas.",
		},
		[]string{"name", "type"},
	)
	breakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rostersync",
			Subsystem: "xmpp",
			Name:      "breaker_state",
			Help:      "Current IQ circuit breaker state (0: closed, 1: half-open, 2: open).",
		},
	)
)

func init() {
	prometheus.MustRegister(iqRequests)
	prometheus.MustRegister(iqRequestDurationBucket)
	prometheus.MustRegister(incomingStanzas)
	prometheus.MustRegister(outgoingStanzas)
	prometheus.MustRegister(breakerState)
}

func reportIQRequest(name string, success bool, d time.Duration) {
	iqRequests.WithLabelValues(name, strconv.FormatBool(success)).Inc()
	iqRequestDurationBucket.WithLabelValues(name).Observe(d.Seconds())
}

func reportIncomingStanza(name, typ string) {
	incomingStanzas.WithLabelValues(name, typ).Inc()
}

func reportOutgoingStanza(name, typ string) {
	outgoingStanzas.WithLabelValues(name, typ).Inc()
}

func reportBreakerState(st gobreaker.State) {
	breakerState.Set(float64(st))
}
