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

package transport

import (
	"context"

	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/pkg/errors"
)

// ErrNotConnected is returned by transport operations requiring an established connection.
var ErrNotConnected = errors.New("transport: not connected")

// Command represents a fire-and-forget friendship command.
type Command int

const (
	// SendFriendRequest asks a contact for a mutual friendship.
	SendFriendRequest Command = iota + 1

	// AcceptFriendRequest accepts an incoming friend request.
	AcceptFriendRequest

	// RejectFriendRequest rejects an incoming friend request.
	RejectFriendRequest

	// RevokeFriendRequest withdraws a previously sent friend request.
	RevokeFriendRequest

	// RemoveFriend ends a mutual friendship.
	RemoveFriend

	// BlockUser adds a contact to the block list.
	BlockUser

	// UnblockUser removes a contact from the block list.
	UnblockUser

	// RemoveAndBlock ends a friendship and blocks the contact.
	RemoveAndBlock

	// CancelAndBlock withdraws a sent request and blocks the contact.
	CancelAndBlock

	// IgnoreAndBlock rejects an incoming request and blocks the contact.
	IgnoreAndBlock
)

// String returns Command string representation.
func (c Command) String() string {
	switch c {
	case SendFriendRequest:
		return "send_friend_request"
	case AcceptFriendRequest:
		return "accept_friend_request"
	case RejectFriendRequest:
		return "reject_friend_request"
	case RevokeFriendRequest:
		return "revoke_friend_request"
	case RemoveFriend:
		return "remove_friend"
	case BlockUser:
		return "block_user"
	case UnblockUser:
		return "unblock_user"
	case RemoveAndBlock:
		return "remove_and_block"
	case CancelAndBlock:
		return "cancel_and_block"
	case IgnoreAndBlock:
		return "ignore_and_block"
	}
	return "unknown"
}

// Subscription represents a push channel registration.
type Subscription interface {
	// Cancel stops event delivery. Calling it more than once has no effect.
	Cancel()
}

// Transport represents the presence transport the roster engine runs on top of.
//
// Push callbacks may be invoked from any goroutine, but never concurrently for the same channel,
// and always in delivery order.
type Transport interface {
	// IsConnected tells whether the transport connection is established.
	IsConnected() bool

	// Connect establishes the transport connection. A connected push follows on success.
	Connect(ctx context.Context) error

	// Disconnect closes the transport connection. A disconnected push follows.
	Disconnect(ctx context.Context) error

	// RequestRoster fetches the full contact list.
	RequestRoster(ctx context.Context) ([]rostermodel.Entry, error)

	// UpdatePresence broadcasts current user presence.
	UpdatePresence(ctx context.Context, presence rostermodel.Presence, invisible bool) error

	// Send issues a friendship command addressed to a contact.
	Send(ctx context.Context, cmd Command, address string) error

	// OnConnected registers a connected push handler.
	OnConnected(fn func()) Subscription

	// OnDisconnected registers a disconnected push handler.
	OnDisconnected(fn func()) Subscription

	// OnPresenceChanged registers a presence push handler.
	OnPresenceChanged(fn func(ev rostermodel.PresenceEvent)) Subscription

	// OnRosterChanged registers a roster push handler.
	OnRosterChanged(fn func(change rostermodel.Change)) Subscription

	// OnBlockListChanged registers a block list push handler.
	// The handler receives the full list of blocked addresses.
	OnBlockListChanged(fn func(addresses []string)) Subscription
}

// SubscriptionFunc is an adapter to allow the use of ordinary functions as subscriptions.
type SubscriptionFunc func()

// Cancel calls f.
func (f SubscriptionFunc) Cancel() { f() }
