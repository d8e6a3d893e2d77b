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

// State represents a session lifecycle state.
type State int

const (
	// LoggedOut is the initial state, and the one every teardown goes back to.
	LoggedOut State = iota

	// Connecting means the user has been authenticated and the transport is being connected.
	Connecting

	// RosterLoading means the roster is being fetched and inserted.
	RosterLoading

	// Ready means the roster has been loaded and live events are being applied.
	Ready
)

// String returns State string representation.
func (s State) String() string {
	switch s {
	case LoggedOut:
		return "LOGGED_OUT"
	case Connecting:
		return "CONNECTING"
	case RosterLoading:
		return "ROSTER_LOADING"
	case Ready:
		return "READY"
	}
	return "UNKNOWN"
}
