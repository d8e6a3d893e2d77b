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

package rostermodel

// Entry represents a single roster item as returned by a bulk roster fetch.
type Entry struct {
	Address             string
	DisplayName         string
	Relationship        RelationshipState
	OutgoingRequestSent bool
}

// Change represents a roster push.
type Change struct {
	Address             string
	Relationship        RelationshipState
	OutgoingRequestSent bool

	// Inbound tells whether the contact is now subscribed to the user's presence.
	// On a contact with a pending incoming request it means the request has been accepted.
	Inbound bool
}

// PresenceEvent represents a presence push.
type PresenceEvent struct {
	Address  string
	Presence Presence
}

// Profile contains lazily resolved contact details.
type Profile struct {
	DisplayName  string
	GivenName    string
	FamilyName   string
	VoiceCapable bool
}
