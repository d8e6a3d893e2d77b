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

import "time"

// Config contains session controller configuration parameters.
type Config struct {
	// ChunkBudget is the wall-clock time a bulk insertion chunk may run before yielding.
	ChunkBudget time.Duration `fig:"chunk_budget" default:"500ms"`

	// ChunkMaxEntries bounds the number of entries inserted per chunk. Zero means no bound.
	ChunkMaxEntries int `fig:"chunk_max_entries"`

	// RosterTimeout bounds the roster bulk fetch.
	RosterTimeout time.Duration `fig:"roster_timeout" default:"30s"`

	// CommandTimeout bounds every outgoing command, rate limiting wait included.
	CommandTimeout time.Duration `fig:"command_timeout" default:"10s"`

	// AcceptTimeout bounds the wait for a friend request acceptance to be confirmed. Zero means no bound
	// other than the caller's context.
	AcceptTimeout time.Duration `fig:"accept_timeout" default:"30s"`

	// ProfileWorkers is the number of concurrent profile resolutions.
	ProfileWorkers int `fig:"profile_workers" default:"4"`

	// ProfileQueueSize is the number of pending profile resolutions kept before dropping new ones.
	ProfileQueueSize int `fig:"profile_queue_size" default:"1024"`
}
