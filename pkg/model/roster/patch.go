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

// Patch represents a partial contact update. Only set fields are merged.
type Patch struct {
	address             *string
	displayName         *string
	givenName           *string
	familyName          *string
	relationship        *RelationshipState
	outgoingRequestSent *bool
	presence            *Presence
	voiceCapable        *bool
	provisional         *bool
}

// NewPatch returns an empty contact patch.
func NewPatch() *Patch {
	return &Patch{}
}

// WithAddress sets patch transport address.
func (p *Patch) WithAddress(address string) *Patch {
	p.address = &address
	return p
}

// WithDisplayName sets patch display name.
func (p *Patch) WithDisplayName(name string) *Patch {
	p.displayName = &name
	return p
}

// WithGivenName sets patch given name.
func (p *Patch) WithGivenName(name string) *Patch {
	p.givenName = &name
	return p
}

// WithFamilyName sets patch family name.
func (p *Patch) WithFamilyName(name string) *Patch {
	p.familyName = &name
	return p
}

// WithRelationship sets patch relationship state.
func (p *Patch) WithRelationship(state RelationshipState) *Patch {
	p.relationship = &state
	return p
}

// WithOutgoingRequestSent sets patch outgoing request flag.
func (p *Patch) WithOutgoingRequestSent(sent bool) *Patch {
	p.outgoingRequestSent = &sent
	return p
}

// WithPresence sets patch presence.
func (p *Patch) WithPresence(presence Presence) *Patch {
	pr := presence.Clone()
	p.presence = &pr
	return p
}

// WithVoiceCapable sets patch voice capability flag.
func (p *Patch) WithVoiceCapable(capable bool) *Patch {
	p.voiceCapable = &capable
	return p
}

// WithProvisional sets patch provisional flag.
func (p *Patch) WithProvisional(provisional bool) *Patch {
	p.provisional = &provisional
	return p
}

// Relationship returns the patched relationship state, if any.
func (p *Patch) Relationship() (RelationshipState, bool) {
	if p.relationship == nil {
		return None, false
	}
	return *p.relationship, true
}

// HasPresence tells whether the patch carries a presence update.
func (p *Patch) HasPresence() bool {
	return p.presence != nil
}

// Apply merges patch fields into c.
func (p *Patch) Apply(c *Contact) {
	if p.address != nil {
		c.Address = *p.address
	}
	if p.displayName != nil {
		c.DisplayName = *p.displayName
	}
	if p.givenName != nil {
		c.GivenName = *p.givenName
	}
	if p.familyName != nil {
		c.FamilyName = *p.familyName
	}
	if p.relationship != nil {
		c.Relationship = *p.relationship
	}
	if p.outgoingRequestSent != nil {
		c.OutgoingRequestSent = *p.outgoingRequestSent
	}
	if p.presence != nil {
		c.Presence = p.presence.Clone()
	}
	if p.voiceCapable != nil {
		c.VoiceCapable = *p.voiceCapable
	}
	if p.provisional != nil {
		c.Provisional = *p.provisional
	}
}
