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

// Availability represents a contact availability value.
type Availability int

const (
	// Unavailable represents an offline contact.
	Unavailable Availability = iota

	// Online represents an available contact.
	Online

	// Away represents an away (or extended away) contact.
	Away

	// Busy represents a do-not-disturb contact.
	Busy
)

// String returns availability string representation.
func (a Availability) String() string {
	switch a {
	case Online:
		return "online"
	case Away:
		return "away"
	case Busy:
		return "busy"
	default:
		return "unavailable"
	}
}

// PresenceKind tells apart plain presences from subscription signals and errors.
type PresenceKind int

const (
	// KindUnavailable represents a plain 'unavailable' presence.
	KindUnavailable PresenceKind = iota

	// KindAvailable represents a plain 'available' presence.
	KindAvailable

	// KindSubscribe represents a subscription request signal.
	KindSubscribe

	// KindUnsubscribe represents a subscription cancel signal.
	KindUnsubscribe

	// KindError represents a presence error.
	KindError
)

// String returns presence kind string representation.
func (k PresenceKind) String() string {
	switch k {
	case KindAvailable:
		return "available"
	case KindSubscribe:
		return "subscribe"
	case KindUnsubscribe:
		return "unsubscribe"
	case KindError:
		return "error"
	default:
		return "unavailable"
	}
}

// Activity describes what a contact is currently doing in-game.
type Activity struct {
	GameID       string
	Title        string
	Joinable     bool
	Broadcasting bool
}

// Presence represents a contact presence value.
type Presence struct {
	Availability Availability
	Kind         PresenceKind
	Status       string
	Activity     *Activity
}

// UnavailablePresence returns the presence a freshly inserted contact starts with.
func UnavailablePresence() Presence {
	return Presence{Availability: Unavailable, Kind: KindUnavailable}
}

// GameID returns the identifier of the game being played, or an empty string.
func (p Presence) GameID() string {
	if p.Kind != KindAvailable || p.Activity == nil {
		return ""
	}
	return p.Activity.GameID
}

// IsOnline tells whether the presence counts as online for roster views.
func (p Presence) IsOnline() bool {
	return (p.Availability == Online || p.Availability == Away) && p.Kind != KindUnavailable
}

// Equal reports whether p and other are deeply equal.
func (p Presence) Equal(other Presence) bool {
	if p.Availability != other.Availability || p.Kind != other.Kind || p.Status != other.Status {
		return false
	}
	switch {
	case p.Activity == nil && other.Activity == nil:
		return true
	case p.Activity == nil || other.Activity == nil:
		return false
	default:
		return *p.Activity == *other.Activity
	}
}

// Clone returns a deep copy of the presence value.
func (p Presence) Clone() Presence {
	ret := p
	if p.Activity != nil {
		act := *p.Activity
		ret.Activity = &act
	}
	return ret
}
