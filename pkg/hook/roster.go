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

package hook

import (
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
)

// Kind represents a hook event kind.
type Kind int

const (
	// ContactChanged is run when a contact is created or its data changes. Keyed by contact id.
	ContactChanged Kind = iota + 1

	// ContactRemoved is run when a contact leaves the store. Keyed by contact id.
	ContactRemoved

	// ViewItemUpdated is run when a contact enters a view or changes while being a member. Keyed by view name.
	ViewItemUpdated

	// ViewItemRemoved is run when a contact leaves a view. Keyed by view name.
	ViewItemRemoved

	// ViewCleared is run when a non-empty view is emptied on store reset. Keyed by view name.
	ViewCleared

	// SelfPresenceChanged is run when the current user's own presence changes.
	SelfPresenceChanged

	// AcceptanceConfirmed is run when a pending incoming request turns into a friendship. Keyed by contact id.
	AcceptanceConfirmed

	// AcceptanceFailed is run when an error presence arrives for a pending incoming request. Keyed by contact id.
	AcceptanceFailed

	// RosterLoaded is run once the roster bulk load has completed.
	RosterLoaded

	// RosterLoadFailed is run when the roster bulk fetch fails.
	RosterLoadFailed

	// BlockListChanged is run when the transport reports a new block list.
	BlockListChanged

	// SessionStateChanged is run on every session state transition.
	SessionStateChanged
)

// String returns kind string representation.
func (k Kind) String() string {
	switch k {
	case ContactChanged:
		return "contact_changed"
	case ContactRemoved:
		return "contact_removed"
	case ViewItemUpdated:
		return "view_item_updated"
	case ViewItemRemoved:
		return "view_item_removed"
	case ViewCleared:
		return "view_cleared"
	case SelfPresenceChanged:
		return "self_presence_changed"
	case AcceptanceConfirmed:
		return "acceptance_confirmed"
	case AcceptanceFailed:
		return "acceptance_failed"
	case RosterLoaded:
		return "roster_loaded"
	case RosterLoadFailed:
		return "roster_load_failed"
	case BlockListChanged:
		return "block_list_changed"
	case SessionStateChanged:
		return "session_state_changed"
	}
	return "unknown"
}

// ContactInfo contains all info associated to a contact event.
type ContactInfo struct {
	// Contact is a copy of the affected contact.
	Contact *rostermodel.Contact

	// Previous is a copy of the contact before the change, nil if it has just been created.
	Previous *rostermodel.Contact
}

// ViewInfo contains all info associated to a view event.
type ViewInfo struct {
	// View is the view name.
	View string

	// Contact is a copy of the affected contact. Nil on ViewCleared.
	Contact *rostermodel.Contact
}

// PresenceInfo contains the current user's presence info.
type PresenceInfo struct {
	Presence  rostermodel.Presence
	Invisible bool
}

// RosterInfo contains roster load info.
type RosterInfo struct {
	// Count is the number of contacts in store after load.
	Count int

	// Err is set on RosterLoadFailed.
	Err error
}

// BlockListInfo contains the current block list.
type BlockListInfo struct {
	ContactIDs []string
}

// SessionInfo contains session state transition info.
type SessionInfo struct {
	From string
	To   string
}
