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

package roster

import "github.com/prometheus/client_golang/prometheus"

var (
	rosterContacts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rostersync",
			Subsystem: "roster",
			Name:      "contacts",
			Help:      "The number of contacts currently held in the contact store.",
		},
	)
	rosterViewMembers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rostersync",
			Subsystem: "roster",
			Name:      "view_members",
			Help:      "The number of contacts currently matching a filtered view.",
		},
		[]string{"view"},
	)
	rosterPresenceUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rostersync",
			Subsystem: "roster",
			Name:      "presence_updates_total",
			Help:      "The total number of processed presence pushes.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(rosterContacts)
	prometheus.MustRegister(rosterViewMembers)
	prometheus.MustRegister(rosterPresenceUpdates)
}

func reportContacts(count int) {
	rosterContacts.Set(float64(count))
}

func reportViewSizes(r *Views) {
	for _, v := range r.order {
		rosterViewMembers.WithLabelValues(v.name).Set(float64(len(v.members)))
	}
}

func reportPresenceUpdate(result string) {
	rosterPresenceUpdates.WithLabelValues(result).Inc()
}
