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

import (
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/pkg/errors"
)

// RelationshipState represents the normalized subscription state between the user and a contact.
type RelationshipState int

const (
	// None represents no established relationship.
	None RelationshipState = iota

	// PendingOutgoing represents a friend request sent by the user and not answered yet.
	PendingOutgoing

	// PendingIncoming represents a friend request received by the user and not answered yet.
	PendingIncoming

	// Mutual represents an established friendship.
	Mutual

	// Removed represents a relationship removed by the transport.
	Removed
)

// String returns relationship state string representation.
func (s RelationshipState) String() string {
	switch s {
	case PendingOutgoing:
		return "pending_outgoing"
	case PendingIncoming:
		return "pending_incoming"
	case Mutual:
		return "mutual"
	case Removed:
		return "removed"
	default:
		return "none"
	}
}

// Contact represents a single social-graph relationship observed by the user.
type Contact struct {
	// ID is the contact identifier (the bare address).
	ID string

	// Address is the full transport address used to issue protocol commands.
	Address string

	DisplayName string
	GivenName   string
	FamilyName  string

	// Relationship is the base relationship state reported by the transport.
	Relationship RelationshipState

	// OutgoingRequestSent tells whether the user has a friend request in flight towards this contact.
	OutgoingRequestSent bool

	Presence     Presence
	VoiceCapable bool

	// Provisional is set on contacts created from a presence push before the roster bulk load completed.
	Provisional bool
}

// State returns the normalized relationship state, deriving the pending states
// from the outgoing request flag and the last presence kind.
func (c *Contact) State() RelationshipState {
	if c.Relationship != None {
		return c.Relationship
	}
	switch {
	case c.OutgoingRequestSent:
		return PendingOutgoing
	case c.Presence.Kind == KindSubscribe:
		return PendingIncoming
	}
	return None
}

// Clone returns a deep copy of the contact.
func (c *Contact) Clone() *Contact {
	ret := *c
	ret.Presence = c.Presence.Clone()
	return &ret
}

// Equal reports whether c and other hold the same data.
func (c *Contact) Equal(other *Contact) bool {
	if other == nil {
		return false
	}
	return c.ID == other.ID &&
		c.Address == other.Address &&
		c.DisplayName == other.DisplayName &&
		c.GivenName == other.GivenName &&
		c.FamilyName == other.FamilyName &&
		c.Relationship == other.Relationship &&
		c.OutgoingRequestSent == other.OutgoingRequestSent &&
		c.VoiceCapable == other.VoiceCapable &&
		c.Provisional == other.Provisional &&
		c.Presence.Equal(other.Presence)
}

// ContactID derives a contact identifier from a transport address by stripping its resource part.
func ContactID(address string) (string, error) {
	if len(address) == 0 {
		return "", errors.New("rostermodel: empty address")
	}
	j, err := jid.NewWithString(address, false)
	if err != nil {
		return "", errors.Wrapf(err, "rostermodel: invalid address %s", address)
	}
	return j.ToBareJID().String(), nil
}
